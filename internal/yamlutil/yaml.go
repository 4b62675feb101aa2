// Package yamlutil reads and writes the YAML documents used for
// configuration and theme files.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the size of a YAML document (1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmpty          = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrTooLarge       = errors.New("yamlutil: document exceeds maximum size")
)

// Decode parses data into v. Unknown and duplicate keys are errors so
// that typos in configuration files surface instead of being ignored.
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, true))
	}
	return nil
}

// Read decodes at most MaxInputSize bytes from r into v.
func Read(r io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading: %w", err)
	}
	return Decode(data, v)
}

// Load decodes the file at path into v.
func Load(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := Read(f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Encode renders v as YAML with two-space indentation and indented
// sequences, the layout the sample configuration uses.
func Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
