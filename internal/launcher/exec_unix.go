//go:build unix

package launcher

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func (e *Exec) launch(path string, args []string) error {
	argv := append([]string{e.Binary}, args...)
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
