package syllabus

import (
	"fmt"
	"io"
	"os"
)

// LoadFile reads a syllabus text file and parses it into topic names.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only syllabus file.
			_ = cerr
		}
	}()
	return ReadFrom(file)
}

// ReadFrom parses syllabus text from a reader (e.g. stdin).
func ReadFrom(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read syllabus text: %w", err)
	}
	return Parse(string(data)), nil
}
