package wire

import "testing"

func testRegistry() *EnumRegistry {
	return NewEnumRegistry(map[string]uint64{
		"PENDING":  0,
		"RUNNING":  1,
		"COMPLETE": 2,
	})
}

func TestEnumDeserializeText(t *testing.T) {
	e := NewEnum(testRegistry())
	if err := deserializeAll(t, e, []byte(`"RUNNING"`)); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if got := e.Value(); got != "RUNNING" {
		t.Errorf("Value() = %q, want RUNNING", got)
	}
	if got := e.Code(); got != 1 {
		t.Errorf("Code() = %d, want 1", got)
	}
}

func TestEnumDeserializeUnknownIdentifierErrors(t *testing.T) {
	e := NewEnum(testRegistry())
	_, _, err := e.Deserialize([]byte(`"NOT_A_STATE"`))
	if err == nil {
		t.Fatal("Deserialize() error = nil, want error for unknown identifier")
	}
}

func TestEnumSetValueUnknownErrors(t *testing.T) {
	e := NewEnum(testRegistry())
	if err := e.SetValue("BOGUS"); err == nil {
		t.Fatal("SetValue() error = nil, want error for unknown identifier")
	}
}

func TestEnumSerializeText(t *testing.T) {
	e := NewEnum(testRegistry())
	if err := e.SetValue("COMPLETE"); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	got := serializeAll(t, e, 4)
	if got != `"COMPLETE"` {
		t.Errorf("Serialize() = %q, want %q", got, `"COMPLETE"`)
	}
}

func TestEnumBinaryRoundTrip(t *testing.T) {
	e := NewEnum(testRegistry())
	if err := e.SetValue("RUNNING"); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}

	buf := make([]byte, 8)
	n, done := e.SerializeBinary(buf)
	if !done {
		t.Fatal("SerializeBinary() done = false")
	}

	decoded := NewEnum(testRegistry())
	dn, ddone, err := decoded.DeserializeBinary(buf[:n])
	if err != nil {
		t.Fatalf("DeserializeBinary() error = %v", err)
	}
	if !ddone || dn != n {
		t.Fatalf("DeserializeBinary() = (%d, %v), want (%d, true)", dn, ddone, n)
	}
	if got := decoded.Value(); got != "RUNNING" {
		t.Errorf("Value() = %q, want RUNNING", got)
	}
}

func TestEnumDeserializeNull(t *testing.T) {
	e := NewEnum(testRegistry())
	if err := deserializeAll(t, e, []byte("null,")); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if !e.IsNull() {
		t.Error("IsNull() = false, want true")
	}
}
