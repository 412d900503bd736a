package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write encodes s in format f.
func Write(w io.Writer, f Format, s Series) error {
	switch f {
	case PNG, SVG:
		return RenderChart(w, f, s)
	case CSV:
		return WriteCSV(w, s)
	case JSON:
		return WriteJSON(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// SaveFile writes s to path, creating parent directories. A partially
// written file is removed on error.
func SaveFile(path string, f Format, s Series) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return Write(file, f, s)
}
