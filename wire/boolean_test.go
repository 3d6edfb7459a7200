package wire

import "testing"

func TestBooleanDeserialize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{"true literal", "true,", true, false},
		{"false literal", "false ", false, false},
		{"compact one", "1,", true, false},
		{"compact zero", "0,", false, false},
		{"bad literal", "tru3", false, true},
		{"unexpected start", "x", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoolean(false)
			err := deserializeAll(t, b, []byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := b.Value(); got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBooleanDeserializeNull(t *testing.T) {
	b := NewBoolean(true)
	if err := deserializeAll(t, b, []byte("null,")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if !b.IsNull() {
		t.Error("IsNull() = false, want true")
	}
	if got := b.Value(); got != true {
		t.Errorf("Value() = %v, want default true", got)
	}
}

func TestBooleanDeserializeSplitAcrossCalls(t *testing.T) {
	full := "false,"
	for split := 1; split < len(full); split++ {
		b := NewBoolean(false)
		if err := deserializeAll(t, b, []byte(full[:split]), []byte(full[split:])); err != nil {
			t.Fatalf("split %d: Deserialize() error = %v", split, err)
		}
		if b.Value() {
			t.Errorf("split %d: Value() = true, want false", split)
		}
	}
}

func TestBooleanSerialize(t *testing.T) {
	b := NewBoolean(false)
	b.SetValue(true)
	if got := serializeAll(t, b, 2); got != "true" {
		t.Errorf("Serialize() = %q, want true", got)
	}

	b.Clear()
	if got := serializeAll(t, b, 64); got != "null" {
		t.Errorf("Serialize() unset = %q, want null", got)
	}
}
