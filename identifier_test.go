package loginfield_test

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-loginfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type symbol string

func (s symbol) String() string { return string(s) }

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
		kind     loginfield.Kind
	}{
		{
			name:     "email string resolves to standard email",
			input:    "email",
			expected: "email",
			kind:     loginfield.KindStandardEmail,
		},
		{
			name:     "username string",
			input:    "username",
			expected: "username",
			kind:     loginfield.KindCustomField,
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    "  login ",
			expected: "login",
			kind:     loginfield.KindCustomField,
		},
		{
			name:     "byte slice",
			input:    []byte("handle"),
			expected: "handle",
			kind:     loginfield.KindCustomField,
		},
		{
			name:     "stringer",
			input:    symbol("nickname"),
			expected: "nickname",
			kind:     loginfield.KindCustomField,
		},
		{
			name:     "stringer named email",
			input:    symbol("email"),
			expected: "email",
			kind:     loginfield.KindStandardEmail,
		},
		{
			name:     "reserved names are accepted",
			input:    "id",
			expected: "id",
			kind:     loginfield.KindCustomField,
		},
		{
			name:     "identifier passes through",
			input:    loginfield.CustomField("login"),
			expected: "login",
			kind:     loginfield.KindCustomField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := loginfield.ParseIdentifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id.Name())
			assert.Equal(t, tt.kind, id.Kind())
		})
	}
}

func TestParseIdentifierInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "empty string", input: ""},
		{name: "blank string", input: "   "},
		{name: "integer", input: 42},
		{name: "nil", input: nil},
		{name: "nil identifier pointer", input: (*loginfield.Identifier)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loginfield.ParseIdentifier(tt.input)
			require.Error(t, err)

			var richErr *goerrors.Error
			if assert.ErrorAs(t, err, &richErr) {
				assert.Equal(t, loginfield.TextCodeInvalidIdentifier, richErr.TextCode)
				assert.Equal(t, goerrors.CategoryBadInput, richErr.Category)
			}
		})
	}
}

func TestMustParseIdentifierPanics(t *testing.T) {
	assert.Panics(t, func() {
		loginfield.MustParseIdentifier(3.14)
	})
	assert.Equal(t, "username", loginfield.MustParseIdentifier("username").Name())
}

func TestIdentifierVariants(t *testing.T) {
	std := loginfield.StandardEmail()
	assert.True(t, std.IsStandardEmail())
	assert.Equal(t, "email", std.Name())
	assert.Equal(t, "email", std.String())

	custom := loginfield.CustomField("username")
	assert.False(t, custom.IsStandardEmail())
	assert.Equal(t, "username", custom.Name())

	// opting out of the format while keeping the field name
	customEmail := loginfield.CustomField("email")
	assert.False(t, customEmail.IsStandardEmail())
	assert.Equal(t, "email", customEmail.Name())
}

func TestZeroIdentifierIsDefault(t *testing.T) {
	var id loginfield.Identifier
	assert.True(t, id.IsStandardEmail())
	assert.Equal(t, loginfield.EmailField, id.Name())
	assert.Equal(t, loginfield.DefaultIdentifier, loginfield.StandardEmail())

	assert.True(t, loginfield.CustomField("  ").IsStandardEmail())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "standard_email", loginfield.KindStandardEmail.String())
	assert.Equal(t, "custom_field", loginfield.KindCustomField.String())
	assert.Equal(t, "unknown", loginfield.Kind(99).String())
}
