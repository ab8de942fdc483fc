package repository

import (
	"context"
	"reflect"
	"sync"

	"github.com/goliatone/go-loginfield"
	"github.com/uptrace/bun"
)

// Schema declares the login property as a column of a bun model table.
// The format constraint is kept with the declaration and enforced by
// the stores writing to the table.
type Schema struct {
	mu       sync.RWMutex
	db       *bun.DB
	model    any
	typeName string
	reserved map[string]struct{}
	alter    bool
	declared *loginfield.Property
}

var _ loginfield.Schema = (*Schema)(nil)

// SchemaOption configures a Schema
type SchemaOption func(*Schema)

// WithAlterTable adds the login column to an existing table instead of
// creating the table
func WithAlterTable() SchemaOption {
	return func(s *Schema) {
		s.alter = true
	}
}

// NewSchema creates a schema for model, e.g. (*Account)(nil). Every
// column of the model, scan only ones included, is reserved.
func NewSchema(db *bun.DB, model any, opts ...SchemaOption) *Schema {
	typ := indirectType(reflect.TypeOf(model))
	table := db.Table(typ)

	s := &Schema{
		db:       db,
		model:    model,
		typeName: typ.Name(),
		reserved: make(map[string]struct{}, len(table.FieldMap)),
	}

	for name := range table.FieldMap {
		s.reserved[name] = struct{}{}
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

func (s *Schema) TypeName() string {
	return s.typeName
}

// DeclareProperty creates the login column and its unique index. A
// second declaration on the same schema fails, whatever its name.
func (s *Schema) DeclareProperty(ctx context.Context, prop loginfield.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.declared != nil {
		return loginfield.NewPropertyExistsError(s.typeName, prop.Name)
	}

	if _, ok := s.reserved[prop.Name]; ok {
		return loginfield.NewReservedPropertyError(s.typeName, prop.Name)
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if s.alter {
			if _, err := tx.NewAddColumn().
				Model(s.model).
				ColumnExpr("? TEXT NOT NULL DEFAULT ''", bun.Ident(prop.Name)).
				Exec(ctx); err != nil {
				return err
			}
		} else {
			if _, err := tx.NewCreateTable().
				Model(s.model).
				IfNotExists().
				ColumnExpr("? TEXT NOT NULL", bun.Ident(prop.Name)).
				Exec(ctx); err != nil {
				return err
			}
		}

		if !prop.Constraints.Unique {
			return nil
		}

		_, err := tx.NewCreateIndex().
			Model(s.model).
			Unique().
			IfNotExists().
			Index(s.indexName(prop.Name)).
			Column(prop.Name).
			Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}

	s.declared = &prop
	return nil
}

// Property returns the declared login property
func (s *Schema) Property() (loginfield.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.declared == nil {
		return loginfield.Property{}, false
	}
	return *s.declared, true
}

// Columns lists the model columns, without scan only fields
func (s *Schema) Columns() []string {
	table := s.db.Table(indirectType(reflect.TypeOf(s.model)))
	cols := make([]string, 0, len(table.Fields))
	for _, f := range table.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

func (s *Schema) indexName(column string) string {
	table := s.db.Table(indirectType(reflect.TypeOf(s.model)))
	return "uq_" + table.Name + "_" + column
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	return t
}
