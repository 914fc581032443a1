package history

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

// ExportFileName returns the default file name for an exported F(n).
func ExportFileName(n uint64) string {
	return fmt.Sprintf("fibonacci_%d.txt", n)
}

// WriteExport writes e as a plain-text artifact: a commented header
// followed by the full value.
func WriteExport(w io.Writer, e Entry, generated time.Time) error {
	bits := 0
	if v, ok := new(big.Int).SetString(e.Result, 10); ok {
		bits = v.BitLen()
	}

	_, err := fmt.Fprintf(w,
		"# Fibonacci Computation Result\n"+
			"# Generated: %s\n"+
			"# Computed: %s\n"+
			"# Algorithm: %s\n"+
			"# N: %d\n"+
			"# Time: %.3f ms\n"+
			"# Bits: %d\n"+
			"# Digits: %d\n"+
			"\n"+
			"F(%d) =\n%s\n",
		generated.Format(time.RFC3339),
		e.Timestamp.Format(time.RFC3339),
		e.Algorithm.Description(),
		e.N,
		e.ElapsedMillis,
		bits,
		e.Digits,
		e.N, e.Result,
	)
	return err
}

// ExportFile writes e to path. When path is a directory the file is named
// with ExportFileName inside it. It returns the path written.
func ExportFile(path string, e Entry) (string, error) {
	if path == "" {
		path = ExportFileName(e.N)
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ExportFileName(e.N))
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := WriteExport(f, e, time.Now()); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
