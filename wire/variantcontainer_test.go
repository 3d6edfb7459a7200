package wire

import "testing"

func TestVariantContainerDeserializesArbitraryObject(t *testing.T) {
	vc := NewVariantContainer()
	input := `{"name":"widget","qty":3,"tags":["a","b"],"active":true}`
	if err := deserializeAll(t, vc, []byte(input)); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}

	name, ok := vc.Variant("name")
	if !ok {
		t.Fatal(`Variant("name") not found`)
	}
	if got := name.Raw(); got != "widget" {
		t.Errorf(`"name" = %q, want widget`, got)
	}
	if got := name.Content(); got != ContentString {
		t.Errorf(`"name" content = %v, want ContentString`, got)
	}

	qty, ok := vc.Variant("qty")
	if !ok {
		t.Fatal(`Variant("qty") not found`)
	}
	n, err := qty.Number()
	if err != nil {
		t.Fatalf("Number() error = %v", err)
	}
	if n != 3 {
		t.Errorf(`"qty" = %d, want 3`, n)
	}

	tags, ok := vc.Variant("tags")
	if !ok {
		t.Fatal(`Variant("tags") not found`)
	}
	if got := tags.Content(); got != ContentArray {
		t.Errorf(`"tags" content = %v, want ContentArray`, got)
	}
	if got := tags.Raw(); got != `["a","b"]` {
		t.Errorf(`"tags" raw = %q, want ["a","b"]`, got)
	}

	active, ok := vc.Variant("active")
	if !ok {
		t.Fatal(`Variant("active") not found`)
	}
	if !active.Boolean() {
		t.Error(`"active" = false, want true`)
	}
}

func TestVariantContainerFieldOrderPreserved(t *testing.T) {
	vc := NewVariantContainer()
	input := `{"z":1,"a":2,"m":3}`
	if err := deserializeAll(t, vc, []byte(input)); err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	fields := vc.Fields()
	if len(fields) != 3 {
		t.Fatalf("Fields() len = %d, want 3", len(fields))
	}
	wantOrder := []string{"z", "a", "m"}
	for i, want := range wantOrder {
		if fields[i].Label != want {
			t.Errorf("fields[%d].Label = %q, want %q", i, fields[i].Label, want)
		}
	}
}
