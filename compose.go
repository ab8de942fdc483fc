package loginfield

import (
	"context"

	"github.com/goliatone/go-print"
)

// Composer attaches the login property to host user types
type Composer struct {
	identifier *Identifier
	setting    *Setting
	logger     Logger
}

// Option configures a Composer
type Option func(*Composer)

// WithIdentifier pins the identifier used by the composer, ignoring
// any Setting. The kind of id is kept: CustomField("email") declares
// an "email" property without the format constraint.
func WithIdentifier(id Identifier) Option {
	return func(c *Composer) {
		id = id.resolve()
		c.identifier = &id
	}
}

// WithSetting makes the composer read s at include time
func WithSetting(s *Setting) Option {
	return func(c *Composer) {
		if s != nil {
			c.setting = s
		}
	}
}

// WithLogger sets the logger
func WithLogger(l Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewComposer returns a composer that, unless told otherwise, reads the
// process wide setting
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		setting: defaultSetting,
		logger:  defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Identifier returns the identifier an Include call would use right now
func (c *Composer) Identifier() Identifier {
	if c.identifier != nil {
		return *c.identifier
	}
	return c.setting.Current()
}

// Include declares the login property on schema and returns it. The
// identifier is resolved when Include runs. Errors from the schema are
// returned as is.
func (c *Composer) Include(ctx context.Context, schema Schema) (Property, error) {
	prop := PropertyFor(c.Identifier())

	if err := schema.DeclareProperty(ctx, prop); err != nil {
		c.logger.Error("failed to declare login property %q on %s: %s", prop.Name, schema.TypeName(), err)
		return Property{}, err
	}

	c.logger.Debug("declared login property on %s: %s", schema.TypeName(), print.MaybePrettyJSON(prop))

	return prop, nil
}

// Include declares the login property configured in the process wide
// setting on schema.
//
//	loginfield.Configure("username")
//	prop, err := loginfield.Include(ctx, schema)
func Include(ctx context.Context, schema Schema) (Property, error) {
	return NewComposer(WithLogger(NopLogger)).Include(ctx, schema)
}
