package loginfield

import "sync/atomic"

// Setting holds the configured login identifier. It is meant to be
// written once during bootstrap and read afterwards. Callers with a
// multi goroutine bootstrap must serialize their writes.
type Setting struct {
	current atomic.Pointer[Identifier]
}

// SettingOption configures a Setting
type SettingOption func(*Setting)

// WithInitialIdentifier seeds the setting
func WithInitialIdentifier(id Identifier) SettingOption {
	return func(s *Setting) {
		s.Set(id)
	}
}

// NewSetting creates a setting that resolves to DefaultIdentifier
// until configured
func NewSetting(opts ...SettingOption) *Setting {
	s := &Setting{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Configure converts v with ParseIdentifier and stores it
func (s *Setting) Configure(v any) (Identifier, error) {
	id, err := ParseIdentifier(v)
	if err != nil {
		return s.Current(), err
	}
	s.Set(id)
	return id, nil
}

// Set stores an already built identifier as is. Unlike Configure("email"),
// Set(CustomField("email")) keeps the custom kind and drops the format.
func (s *Setting) Set(id Identifier) {
	id = id.resolve()
	s.current.Store(&id)
}

// Current returns the last stored identifier or DefaultIdentifier
func (s *Setting) Current() Identifier {
	if id := s.current.Load(); id != nil {
		return *id
	}
	return DefaultIdentifier
}

// Reset goes back to DefaultIdentifier
func (s *Setting) Reset() {
	s.current.Store(nil)
}

var defaultSetting = NewSetting()

// DefaultSetting returns the process wide setting read by Include
func DefaultSetting() *Setting {
	return defaultSetting
}

// Configure sets the process wide login identifier. It must run before
// any user type is composed, later changes do not affect composed types.
//
//	loginfield.Configure("username")
func Configure(v any) (Identifier, error) {
	return defaultSetting.Configure(v)
}

// SetIdentifier stores id as the process wide login identifier. Its kind
// is kept, so SetIdentifier(CustomField("email")) opts out of the email
// format while still naming the property "email". Use Configure("email")
// to get the standard identifier back.
func SetIdentifier(id Identifier) {
	defaultSetting.Set(id)
}

// CurrentIdentifier returns the process wide login identifier,
// "email" if never configured
func CurrentIdentifier() Identifier {
	return defaultSetting.Current()
}

// ResetIdentifier restores the process wide default
func ResetIdentifier() {
	defaultSetting.Reset()
}
