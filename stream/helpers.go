package stream

import (
	"bytes"
	"os"

	"github.com/teranos/corelib/wire"
)

// ToString serializes elem's complete text encoding into a string using the
// package default chunk size.
func ToString(elem wire.Element) (string, error) {
	var buf bytes.Buffer
	if err := New(defaultMaxLen).Serialize(&buf, elem); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FromString deserializes elem from s in one pass.
func FromString(s string, elem wire.Element) error {
	return New(defaultMaxLen).Deserialize(bytes.NewReader([]byte(s)), elem)
}

// WriteFile serializes elem's complete encoding to the named file.
func WriteFile(path string, elem wire.Element) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return New(defaultMaxLen).Serialize(f, elem)
}

// ReadFile deserializes elem from the named file.
func ReadFile(path string, elem wire.Element) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return New(defaultMaxLen).Deserialize(f, elem)
}
