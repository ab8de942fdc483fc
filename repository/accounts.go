package repository

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-loginfield"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MaxLoginAttempts is the maximum number of failed attempts an account
// gets in a cool down period
var MaxLoginAttempts = 5

// CoolDownPeriod is the period in which we enforce a cool down
var CoolDownPeriod = 24 * time.Hour

// Accounts stores accounts keyed by the declared login property. Every
// read selects the login column into Account.Login and every write
// stores Account.Login in it.
type Accounts interface {
	LoginProperty() loginfield.Property

	Create(ctx context.Context, record *Account) (*Account, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error)
	Register(ctx context.Context, login, password string) (*Account, error)
	RegisterTx(ctx context.Context, tx bun.IDB, login, password string) (*Account, error)

	GetByID(ctx context.Context, id string) (*Account, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id string) (*Account, error)
	GetByLogin(ctx context.Context, login string) (*Account, error)
	GetByLoginTx(ctx context.Context, tx bun.IDB, login string) (*Account, error)
	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*Account, int, error)
	ListTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) ([]*Account, int, error)

	Delete(ctx context.Context, record *Account) error
	DeleteTx(ctx context.Context, tx bun.IDB, record *Account) error

	Authenticate(ctx context.Context, login, password string) (*Account, error)
	AuthenticateTx(ctx context.Context, tx bun.IDB, login, password string) (*Account, error)
}

type accounts struct {
	base      repository.Repository[*Account]
	db        *bun.DB
	driver    string
	property  loginfield.Property
	columns   []string
	useHashid bool
	role      AccountRole
	now       func() time.Time
}

var _ Accounts = (*accounts)(nil)

// AccountsOption configures the accounts store
type AccountsOption func(*accounts)

// WithHashidIDs derives account ids from the login value
func WithHashidIDs() AccountsOption {
	return func(a *accounts) {
		a.useHashid = true
	}
}

// WithDefaultRole sets the role given to accounts created without one
func WithDefaultRole(role AccountRole) AccountsOption {
	return func(a *accounts) {
		if role != "" {
			a.role = role
		}
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) AccountsOption {
	return func(a *accounts) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAccountsRepository returns a store for the login property declared
// on schema. It fails with ErrSchemaNotComposed if nothing was declared.
func NewAccountsRepository(db *bun.DB, schema *Schema, opts ...AccountsOption) (Accounts, error) {
	prop, ok := schema.Property()
	if !ok {
		return nil, loginfield.ErrSchemaNotComposed
	}

	column := prop.Name
	base := repository.NewRepository(db, repository.ModelHandlers[*Account]{
		NewRecord: func() *Account { return &Account{} },
		GetID: func(a *Account) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Account, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return column
		},
		GetIdentifierValue: func(a *Account) string {
			if a == nil {
				return ""
			}
			return a.Login
		},
	})

	store := &accounts{
		base:     base,
		db:       db,
		driver:   repository.DetectDriver(db),
		property: prop,
		columns:  schema.Columns(),
		role:     RoleGuest,
		now:      time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	return store, nil
}

func (a *accounts) LoginProperty() loginfield.Property {
	return a.property
}

func (a *accounts) Create(ctx context.Context, record *Account) (*Account, error) {
	return a.CreateTx(ctx, a.db, record)
}

// CreateTx stores record with its login. Records without a password
// hash get a random one and can not authenticate until a password is
// set. A login already in use fails with ErrLoginTaken.
func (a *accounts) CreateTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error) {
	if record == nil {
		return nil, goerrors.New("account record is required", goerrors.CategoryBadInput)
	}

	record.Login = strings.TrimSpace(record.Login)
	if err := a.property.Validate(record.Login); err != nil {
		return nil, err
	}

	if record.PasswordHash == "" {
		hash, err := loginfield.RandomPasswordHash()
		if err != nil {
			return nil, err
		}
		record.PasswordHash = hash
	}

	if record.Role == "" {
		record.Role = a.role
	}

	if record.ID == uuid.Nil && a.useHashid {
		if id, err := hashid.NewUUID(record.Login); err == nil {
			record.ID = id
		}
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if _, err := tx.NewInsert().
		Model(record).
		Value(a.property.Name, "?", record.Login).
		Exec(ctx); err != nil {
		return nil, a.insertError(ctx, tx, record.Login, err)
	}

	return record, nil
}

// insertError tells a lost race on the unique login index apart from
// other database failures
func (a *accounts) insertError(ctx context.Context, tx bun.IDB, login string, err error) error {
	if repository.IsDuplicatedKey(repository.MapDatabaseError(err, a.driver)) {
		return loginfield.ErrLoginTaken
	}

	if _, lookupErr := a.GetByLoginTx(ctx, tx, login); lookupErr == nil {
		return loginfield.ErrLoginTaken
	}

	return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create account")
}

func (a *accounts) Register(ctx context.Context, login, password string) (*Account, error) {
	return a.RegisterTx(ctx, a.db, login, password)
}

// RegisterTx validates login against the declared constraints, hashes
// the password and stores the account
func (a *accounts) RegisterTx(ctx context.Context, tx bun.IDB, login, password string) (*Account, error) {
	login = strings.TrimSpace(login)
	if err := a.property.Validate(login); err != nil {
		return nil, err
	}

	if _, err := a.GetByLoginTx(ctx, tx, login); err == nil {
		return nil, loginfield.ErrLoginTaken
	} else if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	hash, err := loginfield.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return a.CreateTx(ctx, tx, &Account{
		Login:        login,
		PasswordHash: hash,
	})
}

func (a *accounts) GetByID(ctx context.Context, id string) (*Account, error) {
	return a.GetByIDTx(ctx, a.db, id)
}

func (a *accounts) GetByIDTx(ctx context.Context, tx bun.IDB, id string) (*Account, error) {
	record, err := a.base.GetTx(ctx, tx, a.selectLogin, repository.SelectByID(id))
	if err != nil {
		return nil, a.notFound(err, "id", id)
	}
	return record, nil
}

func (a *accounts) GetByLogin(ctx context.Context, login string) (*Account, error) {
	return a.GetByLoginTx(ctx, a.db, login)
}

func (a *accounts) GetByLoginTx(ctx context.Context, tx bun.IDB, login string) (*Account, error) {
	login = strings.TrimSpace(login)

	record, err := a.base.GetTx(ctx, tx, a.selectLogin, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.? = ?", bun.Ident(a.property.Name), login)
	})
	if err != nil {
		return nil, a.notFound(err, a.property.Name, login)
	}
	return record, nil
}

func (a *accounts) List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*Account, int, error) {
	return a.ListTx(ctx, a.db, criteria...)
}

// ListTx returns a page of accounts, 25 by default, and the total count
func (a *accounts) ListTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) ([]*Account, int, error) {
	criteria = append([]repository.SelectCriteria{a.selectLogin}, criteria...)
	return a.base.ListTx(ctx, tx, criteria...)
}

func (a *accounts) Delete(ctx context.Context, record *Account) error {
	return a.DeleteTx(ctx, a.db, record)
}

// DeleteTx soft deletes record
func (a *accounts) DeleteTx(ctx context.Context, tx bun.IDB, record *Account) error {
	return a.base.DeleteTx(ctx, tx, record)
}

// selectLogin lists the model columns and reads the login column into
// Account.Login
func (a *accounts) selectLogin(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Column(a.columns...).
		ColumnExpr("?TableAlias.? AS ?", bun.Ident(a.property.Name), bun.Ident(loginAlias))
}

func (a *accounts) notFound(err error, key, value string) error {
	if !repository.IsRecordNotFound(err) {
		return err
	}
	return repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			key: value,
		})
}

func (a *accounts) Authenticate(ctx context.Context, login, password string) (*Account, error) {
	return a.AuthenticateTx(ctx, a.db, login, password)
}

// AuthenticateTx finds the account by login and compares the password,
// tracking failed attempts
func (a *accounts) AuthenticateTx(ctx context.Context, tx bun.IDB, login, password string) (*Account, error) {
	account, err := a.GetByLoginTx(ctx, tx, login)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, loginfield.ErrMismatchedHashAndPassword
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account during verification")
	}

	if account.LoginAttemptAt != nil && a.now().Sub(*account.LoginAttemptAt) >= CoolDownPeriod {
		account.LoginAttempts = 0
	}

	//if we have too many attempts in the given window, cool off!
	if account.LoginAttempts > MaxLoginAttempts {
		return nil, loginfield.ErrTooManyLoginAttempts
	}

	if err := loginfield.ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		if err2 := a.trackAttemptedLogin(ctx, tx, account); err2 != nil {
			return nil, goerrors.Wrap(err2, goerrors.CategoryInternal, "failed to track login attempt")
		}
		return nil, err
	}

	if err := a.trackSuccessfulLogin(ctx, tx, account); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to track successful login")
	}

	return account, nil
}

func (a *accounts) trackAttemptedLogin(ctx context.Context, tx bun.IDB, account *Account) error {
	now := a.now()
	account.LoginAttempts++
	account.LoginAttemptAt = &now

	_, err := tx.NewUpdate().
		Model((*Account)(nil)).
		Set("login_attempts = ?", account.LoginAttempts).
		Set("login_attempt_at = ?", now).
		Where("id = ?", account.ID).
		Exec(ctx)
	return err
}

func (a *accounts) trackSuccessfulLogin(ctx context.Context, tx bun.IDB, account *Account) error {
	now := a.now()
	account.LoggedInAt = &now
	account.LoginAttempts = 0
	account.LoginAttemptAt = nil

	_, err := tx.NewUpdate().
		Model((*Account)(nil)).
		Set("loggedin_at = ?", now).
		Set("login_attempt_at = NULL").
		Set("login_attempts = 0").
		Where("id = ?", account.ID).
		Exec(ctx)
	return err
}
