package claudecode

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// AccountFields are the top-level keys of ~/.claude.json that belong to a
// single logged-in identity. Everything else is a portable preference.
var AccountFields = []string{
	"oauthAccount",
	"userID",
	"groveConfigCache",
	"cachedChromeExtensionInstalled",
	"subscriptionNoticeCount",
	"s1mAccessCache",
	"recommendedSubscription",
	"hasAvailableSubscription",
}

var accountFieldSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AccountFields))
	for _, f := range AccountFields {
		m[f] = struct{}{}
	}
	return m
}()

// IsAccountField reports whether key is account-specific.
func IsAccountField(key string) bool {
	_, ok := accountFieldSet[key]
	return ok
}

// ExtractAccountFields returns a new document holding only the account
// fields present in doc, in doc's order. A nil doc yields an empty object.
func ExtractAccountFields(doc *Document) (*Document, error) {
	out := NewDocument()
	if doc == nil {
		return out, nil
	}
	var err error
	doc.each(func(key string, value gjson.Result) {
		if err == nil && IsAccountField(key) {
			err = out.Set(key, json.RawMessage(value.Raw))
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PatchAccountFields makes live's account fields match profile's: fields the
// profile has are copied over, fields it lacks are removed. Portable keys of
// live are never touched, and portable keys of profile are ignored. Either
// argument being nil makes this a no-op.
func PatchAccountFields(live, profile *Document) error {
	if live == nil || profile == nil {
		return nil
	}
	for _, k := range AccountFields {
		var err error
		if v, ok := profile.Get(k); ok {
			err = live.Set(k, v)
		} else {
			err = live.Delete(k)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// OAuthAccount is the oauthAccount object Claude Code writes after login.
type OAuthAccount struct {
	AccountUUID          string  `json:"accountUuid"`
	EmailAddress         string  `json:"emailAddress"`
	OrganizationUUID     string  `json:"organizationUuid"`
	DisplayName          string  `json:"displayName"`
	OrganizationRole     string  `json:"organizationRole"`
	OrganizationName     string  `json:"organizationName"`
	HasExtraUsageEnabled bool    `json:"hasExtraUsageEnabled"`
	WorkspaceRole        *string `json:"workspaceRole,omitempty"`
}

// Label returns "<displayName> @ <organizationName>".
func (a OAuthAccount) Label() string {
	return fmt.Sprintf("%s @ %s", a.DisplayName, a.OrganizationName)
}

// Account decodes doc's oauthAccount. ok is false when the key is absent or
// null.
func Account(doc *Document) (acct OAuthAccount, ok bool, err error) {
	raw, present := doc.Get("oauthAccount")
	if !present || string(raw) == "null" {
		return OAuthAccount{}, false, nil
	}
	if err := json.Unmarshal(raw, &acct); err != nil {
		return OAuthAccount{}, false, fmt.Errorf("parsing oauthAccount: %w", err)
	}
	return acct, true, nil
}

// AccountUUID returns oauthAccount.accountUuid, or "" when it is missing or
// not a string.
func AccountUUID(doc *Document) string {
	if doc == nil {
		return ""
	}
	r := gjson.GetBytes(doc.raw, "oauthAccount.accountUuid")
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}
