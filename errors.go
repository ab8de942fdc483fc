package loginfield

import (
	"fmt"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidIdentifier = "LOGIN_FIELD_INVALID"
	TextCodePropertyExists    = "LOGIN_FIELD_EXISTS"
	TextCodeReservedProperty  = "LOGIN_FIELD_RESERVED"
	TextCodeSchemaNotComposed = "LOGIN_FIELD_NOT_COMPOSED"
	TextCodeInvalidLogin      = "LOGIN_VALUE_INVALID"
	TextCodeInvalidCreds      = "INVALID_CREDENTIALS"
	TextCodeEmptyPassword     = "EMPTY_PASSWORD"
	TextCodeTooManyAttempts   = "TOO_MANY_ATTEMPTS"
	TextCodeLoginTaken        = "LOGIN_TAKEN"
)

// ErrInvalidIdentifier is returned when a value can not be used as a field name
var ErrInvalidIdentifier = errors.New("login identifier must be a non empty name", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidIdentifier).
	WithCode(errors.CodeBadRequest)

// ErrPropertyExists is returned when the login property is declared twice
var ErrPropertyExists = errors.New("login property already declared", errors.CategoryConflict).
	WithTextCode(TextCodePropertyExists).
	WithCode(errors.CodeConflict)

// ErrReservedProperty is returned when the login property collides with
// a field the schema already owns
var ErrReservedProperty = errors.New("login property collides with a reserved field", errors.CategoryConflict).
	WithTextCode(TextCodeReservedProperty).
	WithCode(errors.CodeConflict)

// ErrSchemaNotComposed is returned by stores used before the login
// property was declared
var ErrSchemaNotComposed = errors.New("login property has not been declared", errors.CategoryOperation).
	WithTextCode(TextCodeSchemaNotComposed)

// ErrInvalidLogin is returned when a login value breaks the declared constraints
var ErrInvalidLogin = errors.New("login value is invalid", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidLogin).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is returned when credentials do not match
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = errors.New("password can not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrTooManyLoginAttempts is returned when an account is cooling down
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryRateLimit).
	WithTextCode(TextCodeTooManyAttempts)

// ErrLoginTaken is returned when registering a login value already in use
var ErrLoginTaken = errors.New("login already registered", errors.CategoryConflict).
	WithTextCode(TextCodeLoginTaken).
	WithCode(errors.CodeConflict)

// NewPropertyExistsError reports a duplicate declaration on typeName
func NewPropertyExistsError(typeName, name string) error {
	return errors.New(fmt.Sprintf("login property %q already declared on %s", name, typeName), errors.CategoryConflict).
		WithTextCode(TextCodePropertyExists).
		WithCode(errors.CodeConflict).
		WithMetadata(map[string]any{
			"type":     typeName,
			"property": name,
		})
}

// NewReservedPropertyError reports a collision with a field owned by typeName
func NewReservedPropertyError(typeName, name string) error {
	return errors.New(fmt.Sprintf("login property %q collides with a reserved field on %s", name, typeName), errors.CategoryConflict).
		WithTextCode(TextCodeReservedProperty).
		WithCode(errors.CodeConflict).
		WithMetadata(map[string]any{
			"type":     typeName,
			"property": name,
		})
}

// NewInvalidLoginError wraps a constraint violation for property name
func NewInvalidLoginError(name string, err error) error {
	return errors.Wrap(err, errors.CategoryValidation, fmt.Sprintf("login value for %q is invalid", name)).
		WithTextCode(TextCodeInvalidLogin).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{
			"property": name,
		})
}

// HasTextCode reports whether err carries the given text code
func HasTextCode(err error, code string) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

func invalidIdentifier(v any) error {
	return errors.New("login identifier must be a non empty name", errors.CategoryBadInput).
		WithTextCode(TextCodeInvalidIdentifier).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{
			"value": fmt.Sprintf("%v", v),
			"type":  fmt.Sprintf("%T", v),
		})
}
