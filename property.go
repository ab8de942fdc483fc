package loginfield

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// PropertyType is the storage type of a declared property
type PropertyType string

// TypeText is the only type the login property uses
const TypeText PropertyType = "text"

// Constraints declared alongside the login property
type Constraints struct {
	Unique   bool           `json:"unique"`
	Required bool           `json:"required"`
	Format   *regexp.Regexp `json:"format,omitempty"`
}

// Property is the schema declaration handed to a Schema
type Property struct {
	Name        string       `json:"name"`
	Type        PropertyType `json:"type"`
	Constraints Constraints  `json:"constraints"`
}

// PropertyFor builds the declaration for id. The format constraint is
// only attached to the standard email identifier.
func PropertyFor(id Identifier) Property {
	id = id.resolve()

	prop := Property{
		Name: id.Name(),
		Type: TypeText,
		Constraints: Constraints{
			Unique:   true,
			Required: true,
		},
	}

	if id.IsStandardEmail() {
		prop.Constraints.Format = EmailFormat
	}

	return prop
}

// HasFormat reports whether a format constraint is attached
func (p Property) HasFormat() bool {
	return p.Constraints.Format != nil
}

// Rules maps the value level constraints to validation rules. Uniqueness
// is left to the storage layer.
func (p Property) Rules() []validation.Rule {
	rules := make([]validation.Rule, 0, 2)
	if p.Constraints.Required {
		rules = append(rules, validation.Required)
	}
	if p.Constraints.Format != nil {
		rules = append(rules, validation.Match(p.Constraints.Format).Error("must be a valid email address"))
	}
	return rules
}

// Validate checks value against the declared constraints
func (p Property) Validate(value string) error {
	if err := validation.Validate(value, p.Rules()...); err != nil {
		return NewInvalidLoginError(p.Name, err)
	}
	return nil
}
