package canvas

import (
	"archive/zip"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// WriteArchive writes a deflate-compressed zip with one entry per
// (name, content) pair, printing each entry and the final path.
func WriteArchive(path string, names, contents []string) error {
	if len(names) != len(contents) {
		return errors.Errorf("archive entry mismatch: %d names, %d downloads", len(names), len(contents))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	zp := zip.NewWriter(f)
	for i, name := range names {
		w, err := zp.Create(name)
		if err != nil {
			return errors.Wrapf(err, "adding %s to archive", name)
		}
		if _, err := w.Write([]byte(contents[i])); err != nil {
			return errors.Wrapf(err, "writing %s to archive", name)
		}
		fmt.Printf(" %s\n", name)
	}
	if err := zp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", path)
	}
	fmt.Printf("-> %s\n", path)
	return nil
}
