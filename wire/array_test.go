package wire

import "testing"

func numberFactory() ElementFactory {
	return func() Element { return NewNumber[int64](0, true, Base10) }
}

func TestArrayDeserializeRoundTrip(t *testing.T) {
	a := NewArray(numberFactory())
	if err := deserializeAll(t, a, []byte("[1,2,3]")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	for i, want := range []int64{1, 2, 3} {
		got := a.Items()[i].(*Number[int64]).Value()
		if got != want {
			t.Errorf("item %d = %d, want %d", i, got, want)
		}
	}
}

func TestArrayDeserializeEmpty(t *testing.T) {
	a := NewArray(numberFactory())
	if err := deserializeAll(t, a, []byte("[]")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if a.Len() != 0 {
		t.Errorf("Len() = %d, want 0", a.Len())
	}
	if a.IsSet() {
		t.Error("IsSet() = true, want false for an empty array")
	}
}

func TestArrayDeserializeNull(t *testing.T) {
	a := NewArray(numberFactory())
	if err := deserializeAll(t, a, []byte("null,")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if !a.IsNull() {
		t.Error("IsNull() = false, want true")
	}
}

func TestArrayDeserializeTrailingCommaErrors(t *testing.T) {
	a := NewArray(numberFactory())
	_, _, err := a.Deserialize([]byte("[1,2,]"))
	if err == nil {
		t.Fatal("Deserialize() error = nil, want trailing comma error")
	}
}

func TestArrayDeserializeLeadingCommaErrors(t *testing.T) {
	a := NewArray(numberFactory())
	_, _, err := a.Deserialize([]byte("[,1]"))
	if err == nil {
		t.Fatal("Deserialize() error = nil, want leading comma error")
	}
}

func TestArrayDeserializeSplitAcrossCalls(t *testing.T) {
	full := "[10,20,30]"
	for split := 1; split < len(full); split++ {
		a := NewArray(numberFactory())
		if err := deserializeAll(t, a, []byte(full[:split]), []byte(full[split:])); err != nil {
			t.Fatalf("split %d: Deserialize() error = %v", split, err)
		}
		if a.Len() != 3 {
			t.Fatalf("split %d: Len() = %d, want 3", split, a.Len())
		}
	}
}

func TestArraySerializeRoundTrip(t *testing.T) {
	a := NewArray(numberFactory())
	if _, _, err := a.Deserialize([]byte("[5,6,7]")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	got := serializeAll(t, a, 3)
	if got != "[5,6,7]" {
		t.Errorf("Serialize() = %q, want [5,6,7]", got)
	}
}

func TestArraySerializeUnsetRendersEmptyBrackets(t *testing.T) {
	// An unset (zero-length) array is a distinct wire state from an
	// explicit JSON null array (§3.1): it serializes as "[]".
	a := NewArray(numberFactory())
	got := serializeAll(t, a, 64)
	if got != "[]" {
		t.Errorf("Serialize() of unset array = %q, want []", got)
	}
}

func TestArraySerializeExplicitNull(t *testing.T) {
	a := NewArray(numberFactory())
	if err := deserializeAll(t, a, []byte("null,")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	got := serializeAll(t, a, 64)
	if got != "null" {
		t.Errorf("Serialize() of null array = %q, want null", got)
	}
}
