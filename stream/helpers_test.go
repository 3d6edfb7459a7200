package stream

import (
	"path/filepath"
	"testing"

	"github.com/teranos/corelib/wire"
)

func TestToStringFromStringRoundTrip(t *testing.T) {
	s := wire.NewString(true)
	s.SetValue("round trip me")

	encoded, err := ToString(s)
	if err != nil {
		t.Fatalf("ToString() error = %v", err)
	}

	decoded := wire.NewString(true)
	if err := FromString(encoded, decoded); err != nil {
		t.Fatalf("FromString() error = %v", err)
	}
	if decoded.Value() != "round trip me" {
		t.Errorf("decoded = %q, want %q", decoded.Value(), "round trip me")
	}
}

func TestWriteFileReadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	n := wire.NewNumber(99, true, wire.Base10)
	n.SetValue(99)
	if err := WriteFile(path, n); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	decoded := wire.NewNumber(0, true, wire.Base10)
	if err := ReadFile(path, decoded); err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if decoded.Value() != 99 {
		t.Errorf("decoded = %d, want 99", decoded.Value())
	}
}

func TestReadFileErrorsOnMissingFile(t *testing.T) {
	decoded := wire.NewString(true)
	err := ReadFile(filepath.Join(t.TempDir(), "missing.json"), decoded)
	if err == nil {
		t.Fatal("ReadFile() error = nil, want error for a nonexistent path")
	}
}
