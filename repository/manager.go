package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-loginfield"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes the composed schema and its stores
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Schema() *Schema
	Accounts() Accounts
}

type mngr struct {
	db       *bun.DB
	schema   *Schema
	accounts Accounts
}

// ManagerConfig groups the options used by NewRepositoryManager
type ManagerConfig struct {
	Composer       *loginfield.Composer
	SchemaOptions  []SchemaOption
	AccountOptions []AccountsOption
}

// NewRepositoryManager composes the Account type with the login
// property and builds the stores on top of it. A nil composer reads the
// process wide setting.
func NewRepositoryManager(ctx context.Context, db *bun.DB, cfg ManagerConfig) (RepositoryManager, error) {
	composer := cfg.Composer
	if composer == nil {
		composer = loginfield.NewComposer()
	}

	schema := NewSchema(db, (*Account)(nil), cfg.SchemaOptions...)
	if _, err := composer.Include(ctx, schema); err != nil {
		return nil, err
	}

	accounts, err := NewAccountsRepository(db, schema, cfg.AccountOptions...)
	if err != nil {
		return nil, err
	}

	return &mngr{
		db:       db,
		schema:   schema,
		accounts: accounts,
	}, nil
}

func (m mngr) Validate() error {
	if m.schema == nil {
		return errors.New("schema should be initialized")
	}

	if _, ok := m.schema.Property(); !ok {
		return loginfield.ErrSchemaNotComposed
	}

	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Schema() *Schema {
	return m.schema
}

func (m mngr) Accounts() Accounts {
	return m.accounts
}
