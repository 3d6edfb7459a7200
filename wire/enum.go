package wire

// EnumRegistry maps between an enum's wire identifier and its integer
// code, external to the Enum element itself (§4.1: "maps via an
// external name↔code registry").
type EnumRegistry struct {
	nameToCode map[string]uint64
	codeToName map[uint64]string
}

func NewEnumRegistry(pairs map[string]uint64) *EnumRegistry {
	r := &EnumRegistry{
		nameToCode: make(map[string]uint64, len(pairs)),
		codeToName: make(map[uint64]string, len(pairs)),
	}
	for name, code := range pairs {
		r.nameToCode[name] = code
		r.codeToName[code] = name
	}
	return r
}

// Enum parses as a quoted identifier in text framing, serializes as the
// identifier (text) or as an unsigned integer (binary framing), per
// §3.1/§4.1.5.
type Enum struct {
	state

	registry *EnumRegistry
	code     uint64
	name     string

	inner  *String
	primed bool // inner has been loaded with the current name/null for this Serialize run
}

func NewEnum(registry *EnumRegistry) *Enum {
	return &Enum{registry: registry, inner: NewString(true)}
}

func (e *Enum) Value() string {
	if !e.set || e.null {
		return ""
	}
	return e.name
}

func (e *Enum) Code() uint64 {
	return e.code
}

func (e *Enum) SetValue(name string) error {
	code, ok := e.registry.nameToCode[name]
	if !ok {
		return &ParseError{Kind: ErrorValue, Message: "unknown enum identifier: " + name}
	}
	e.name = name
	e.code = code
	e.set = true
	e.null = false
	return nil
}

func (e *Enum) Clear() {
	e.state.clear()
	e.name = ""
	e.code = 0
	e.inner.Clear()
	e.primed = false
}

// Deserialize implements Element per §4.1: parses a quoted identifier and
// resolves it against the registry.
func (e *Enum) Deserialize(src []byte) (int, bool, error) {
	n, done, err := e.inner.Deserialize(src)
	if err != nil {
		return n, done, err
	}
	if !done {
		return n, false, nil
	}
	if e.inner.IsNull() {
		e.null = true
		e.set = true
		return n, true, nil
	}
	name := e.inner.Value()
	code, ok := e.registry.nameToCode[name]
	if !ok {
		return n, true, &ParseError{Kind: ErrorValue, Message: "unknown enum identifier: " + name}
	}
	e.name = name
	e.code = code
	e.set = true
	e.null = false
	return n, true, nil
}

// Serialize implements Element per §4.1, text framing: emits the
// identifier as a quoted string.
func (e *Enum) Serialize(dst []byte) (int, bool) {
	if !e.primed {
		e.inner.Clear()
		if e.set && !e.null {
			e.inner.SetValue(e.name)
		}
		e.primed = true
	}
	n, done := e.inner.Serialize(dst)
	if done {
		e.primed = false
	}
	return n, done
}

// SerializeBinary implements BinaryElement: enums serialize as an
// unsigned integer code in the binary framing (§4.1.5).
func (e *Enum) SerializeBinary(dst []byte) (int, bool) {
	num := NewNumber[uint64](0, false, Base10)
	if e.set && !e.null {
		num.SetValue(e.code)
	}
	return serializeBinaryUint(num.Value(), !e.set || e.null, dst)
}

// DeserializeBinary implements BinaryElement.
func (e *Enum) DeserializeBinary(src []byte) (int, bool, error) {
	code, n, done, err := deserializeBinaryUint(src)
	if err != nil || !done {
		return n, done, err
	}
	name, ok := e.registry.codeToName[code]
	if !ok {
		return n, true, &ParseError{Kind: ErrorValue, Message: "unknown enum code"}
	}
	e.name = name
	e.code = code
	e.set = true
	e.null = false
	return n, true, nil
}
