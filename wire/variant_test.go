package wire

import "testing"

func TestVariantClassifiesContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ContentKind
		raw   string
	}{
		{"string", `"hello"`, ContentString, "hello"},
		{"number", "42,", ContentNumber, "42"},
		{"negative number", "-7,", ContentNumber, "-7"},
		{"true", "true,", ContentBoolean, "true"},
		{"false", "false,", ContentBoolean, "false"},
		{"null", "null,", ContentEmpty, "null"},
		{"object", `{"a":1}`, ContentObject, `{"a":1}`},
		{"array", `[1,2]`, ContentArray, `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVariant()
			if err := deserializeAll(t, v, []byte(tt.input)); err != nil {
				t.Fatalf("Deserialize() error = %v", err)
			}
			if got := v.Content(); got != tt.kind {
				t.Errorf("Content() = %v, want %v", got, tt.kind)
			}
			if got := v.Raw(); got != tt.raw {
				t.Errorf("Raw() = %q, want %q", got, tt.raw)
			}
		})
	}
}

// TestVariantNullClassificationIsOrderSensitiveToQuoted exercises the open
// question documented on Variant.Deserialize's unquoted-scalar switch: the
// literal text "null" classifies differently depending on whether it
// arrived quoted or bare, since a quoted value never reaches that switch
// at all (§9 Open Questions).
func TestVariantNullClassificationIsOrderSensitiveToQuoted(t *testing.T) {
	quoted := NewVariant()
	if err := deserializeAll(t, quoted, []byte(`"null"`)); err != nil {
		t.Fatalf("quoted: Deserialize() error = %v", err)
	}
	if got := quoted.Content(); got != ContentString {
		t.Errorf("quoted: Content() = %v, want ContentString", got)
	}
	if got := quoted.Raw(); got != "null" {
		t.Errorf("quoted: Raw() = %q, want null", got)
	}

	bare := NewVariant()
	if err := deserializeAll(t, bare, []byte("null,")); err != nil {
		t.Fatalf("bare: Deserialize() error = %v", err)
	}
	if got := bare.Content(); got != ContentEmpty {
		t.Errorf("bare: Content() = %v, want ContentEmpty", got)
	}
	if got := bare.Raw(); got != "null" {
		t.Errorf("bare: Raw() = %q, want null", got)
	}
}

func TestVariantNumberHelper(t *testing.T) {
	v := NewVariant()
	if err := deserializeAll(t, v, []byte("123,")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	n, err := v.Number()
	if err != nil {
		t.Fatalf("Number() error = %v", err)
	}
	if n != 123 {
		t.Errorf("Number() = %d, want 123", n)
	}
}

func TestVariantBooleanHelper(t *testing.T) {
	v := NewVariant()
	if err := deserializeAll(t, v, []byte("true,")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if !v.Boolean() {
		t.Error("Boolean() = false, want true")
	}
}

func TestVariantSerializeRoundTrip(t *testing.T) {
	v := NewVariant()
	if err := deserializeAll(t, v, []byte(`{"nested":true}`)); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	got := serializeAll(t, v, 5)
	if got != `{"nested":true}` {
		t.Errorf("Serialize() = %q, want %q", got, `{"nested":true}`)
	}
}
