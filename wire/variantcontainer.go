package wire

// VariantContainer is a Container whose Request hook always accepts an
// unknown label by inserting a freshly named Variant, so it can
// deserialize arbitrary JSON objects and expose fields by name in
// insertion order (§4.4).
type VariantContainer struct {
	*Container
}

func NewVariantContainer() *VariantContainer {
	vc := &VariantContainer{Container: NewContainer()}
	vc.SetRequest(func(label string) (Element, bool) {
		return NewVariant(), true
	})
	return vc
}

// Variant returns the named field as a *Variant, if present.
func (vc *VariantContainer) Variant(label string) (*Variant, bool) {
	elem, ok := vc.Field(label)
	if !ok {
		return nil, false
	}
	v, ok := elem.(*Variant)
	return v, ok
}
