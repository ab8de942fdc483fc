package loginfield

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemorySchema keeps declared properties in memory. Hosts that manage
// their own storage can use it to collect the declaration, tests use it
// as the persistence layer.
type MemorySchema struct {
	mu         sync.RWMutex
	typeName   string
	reserved   map[string]struct{}
	properties map[string]Property
}

// MemorySchemaOption configures a MemorySchema
type MemorySchemaOption func(*MemorySchema)

// WithReservedNames marks field names the host type already owns
func WithReservedNames(names ...string) MemorySchemaOption {
	return func(s *MemorySchema) {
		for _, name := range names {
			s.reserved[strings.TrimSpace(name)] = struct{}{}
		}
	}
}

// NewMemorySchema creates a schema for the host type typeName
func NewMemorySchema(typeName string, opts ...MemorySchemaOption) *MemorySchema {
	s := &MemorySchema{
		typeName:   typeName,
		reserved:   make(map[string]struct{}),
		properties: make(map[string]Property),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemorySchema) TypeName() string {
	return s.typeName
}

// DeclareProperty fails with a conflict if the name is reserved or was
// already declared
func (s *MemorySchema) DeclareProperty(ctx context.Context, prop Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reserved[prop.Name]; ok {
		return NewReservedPropertyError(s.typeName, prop.Name)
	}

	if _, ok := s.properties[prop.Name]; ok {
		return NewPropertyExistsError(s.typeName, prop.Name)
	}

	s.properties[prop.Name] = prop
	return nil
}

// Property returns the declaration for name
func (s *MemorySchema) Property(name string) (Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prop, ok := s.properties[name]
	return prop, ok
}

// Properties returns all declarations sorted by name
func (s *MemorySchema) Properties() []Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Property, 0, len(s.properties))
	for _, prop := range s.properties {
		out = append(out, prop)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Validate checks value against the constraints declared for name
func (s *MemorySchema) Validate(name, value string) error {
	prop, ok := s.Property(name)
	if !ok {
		return ErrSchemaNotComposed
	}
	return prop.Validate(value)
}
