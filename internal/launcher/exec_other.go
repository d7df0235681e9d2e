//go:build !unix

package launcher

func (e *Exec) launch(path string, args []string) error {
	return e.run(path, args)
}
