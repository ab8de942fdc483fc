package loginfield

import (
	"fmt"
	"strings"
)

// Kind tells the two identifier variants apart
type Kind int

const (
	// KindStandardEmail is the built in email identifier
	KindStandardEmail Kind = iota
	// KindCustomField is any other host chosen field
	KindCustomField
)

func (k Kind) String() string {
	switch k {
	case KindStandardEmail:
		return "standard_email"
	case KindCustomField:
		return "custom_field"
	default:
		return "unknown"
	}
}

// EmailField is the name of the default login field
const EmailField = "email"

// Identifier names the single field on the user entity used to log in.
// The zero value resolves to the standard email identifier.
type Identifier struct {
	kind Kind
	name string
}

// DefaultIdentifier is used when nothing was configured
var DefaultIdentifier = StandardEmail()

// StandardEmail returns the default identifier. Only this variant
// carries the email format constraint.
func StandardEmail() Identifier {
	return Identifier{kind: KindStandardEmail, name: EmailField}
}

// CustomField returns a host defined identifier. A custom field named
// "email" is still custom and gets no format constraint.
func CustomField(name string) Identifier {
	return Identifier{kind: KindCustomField, name: strings.TrimSpace(name)}
}

// ParseIdentifier converts a symbol like value into an Identifier.
// The literal name "email" resolves to StandardEmail, everything
// else to CustomField. The shape of the name is not validated.
func ParseIdentifier(v any) (Identifier, error) {
	var name string
	switch t := v.(type) {
	case Identifier:
		return t.resolve(), nil
	case *Identifier:
		if t == nil {
			return Identifier{}, invalidIdentifier(v)
		}
		return t.resolve(), nil
	case string:
		name = t
	case []byte:
		name = string(t)
	case fmt.Stringer:
		name = t.String()
	default:
		return Identifier{}, invalidIdentifier(v)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Identifier{}, invalidIdentifier(v)
	}

	if name == EmailField {
		return StandardEmail(), nil
	}

	return CustomField(name), nil
}

// MustParseIdentifier is like ParseIdentifier but panics on error
func MustParseIdentifier(v any) Identifier {
	id, err := ParseIdentifier(v)
	if err != nil {
		panic(err)
	}
	return id
}

// Name returns the field name
func (i Identifier) Name() string {
	return i.resolve().name
}

// Kind returns the identifier variant
func (i Identifier) Kind() Kind {
	return i.resolve().kind
}

// IsStandardEmail reports whether the identifier is the default email one
func (i Identifier) IsStandardEmail() bool {
	return i.Kind() == KindStandardEmail
}

func (i Identifier) String() string {
	return i.Name()
}

func (i Identifier) resolve() Identifier {
	if i.kind == KindStandardEmail || i.name == "" {
		return StandardEmail()
	}
	return i
}
