package repository

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-loginfield"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccounts(t *testing.T, id loginfield.Identifier, opts ...AccountsOption) Accounts {
	t.Helper()

	db := setupDB(t)
	schema := NewSchema(db, (*Account)(nil))
	_, err := composerFor(id).Include(context.Background(), schema)
	require.NoError(t, err)

	store, err := NewAccountsRepository(db, schema, opts...)
	require.NoError(t, err)
	return store
}

func TestAccountsRequireComposedSchema(t *testing.T) {
	db := setupDB(t)

	_, err := NewAccountsRepository(db, NewSchema(db, (*Account)(nil)))
	assert.ErrorIs(t, err, loginfield.ErrSchemaNotComposed)
}

func TestAccountsRegisterAndFindByEmail(t *testing.T) {
	ctx := context.Background()
	store := setupAccounts(t, loginfield.StandardEmail())

	assert.Equal(t, "email", store.LoginProperty().Name)

	account, err := store.Register(ctx, " user@example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", account.Login)
	assert.Equal(t, RoleGuest, account.Role)
	assert.NotEmpty(t, account.PasswordHash)

	found, err := store.GetByLogin(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
	assert.Equal(t, "user@example.com", found.Login)

	_, err = store.GetByLogin(ctx, "missing@example.com")
	assert.True(t, repository.IsRecordNotFound(err))
}

func TestAccountsRegisterEnforcesEmailFormat(t *testing.T) {
	store := setupAccounts(t, loginfield.StandardEmail())

	for _, login := range []string{"not-an-email", "user@", "user@domain", ""} {
		_, err := store.Register(context.Background(), login, "password123")
		require.Error(t, err, login)

		var richErr *goerrors.Error
		if assert.ErrorAs(t, err, &richErr) {
			assert.Equal(t, loginfield.TextCodeInvalidLogin, richErr.TextCode)
		}
	}
}

func TestAccountsRegisterCustomFieldSkipsFormat(t *testing.T) {
	ctx := context.Background()
	store := setupAccounts(t, loginfield.CustomField("login"), WithDefaultRole(RoleMember))

	account, err := store.Register(ctx, "octocat", "password123")
	require.NoError(t, err)
	assert.Equal(t, RoleMember, account.Role)

	found, err := store.GetByLogin(ctx, "octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", found.Login)

	_, err = store.Register(ctx, "", "password123")
	assert.Error(t, err)
}

func TestAccountsRegisterRejectsTakenLogin(t *testing.T) {
	ctx := context.Background()
	store := setupAccounts(t, loginfield.CustomField("username"))

	_, err := store.Register(ctx, "octocat", "password123")
	require.NoError(t, err)

	_, err = store.Register(ctx, "octocat", "password456")
	assert.ErrorIs(t, err, loginfield.ErrLoginTaken)
}

func TestAccountsRegisterRejectsEmptyPassword(t *testing.T) {
	store := setupAccounts(t, loginfield.CustomField("username"))

	_, err := store.Register(context.Background(), "octocat", "")
	assert.ErrorIs(t, err, loginfield.ErrNoEmptyString)
}

func TestAccountsCRUDCarriesLogin(t *testing.T) {
	ctx := context.Background()
	store := setupAccounts(t, loginfield.StandardEmail())

	registered, err := store.Register(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	byID, err := store.GetByID(ctx, registered.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", byID.Login)

	created, err := store.Create(ctx, &Account{Login: " other@example.com "})
	require.NoError(t, err)
	assert.Equal(t, "other@example.com", created.Login)
	assert.Equal(t, RoleGuest, created.Role)
	assert.NotEmpty(t, created.PasswordHash)

	found, err := store.GetByLogin(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// imported accounts get a random password and can not log in yet
	_, err = store.Authenticate(ctx, "other@example.com", "password123")
	assert.ErrorIs(t, err, loginfield.ErrMismatchedHashAndPassword)

	records, total, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	logins := make([]string, 0, len(records))
	for _, r := range records {
		logins = append(logins, r.Login)
	}
	assert.ElementsMatch(t, []string{"user@example.com", "other@example.com"}, logins)

	require.NoError(t, store.Delete(ctx, found))

	_, err = store.GetByID(ctx, created.ID.String())
	assert.True(t, repository.IsRecordNotFound(err))

	_, total, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestAccountsCreateValidatesLogin(t *testing.T) {
	store := setupAccounts(t, loginfield.StandardEmail())

	_, err := store.Create(context.Background(), &Account{Login: "not-an-email"})
	require.Error(t, err)
	assert.True(t, loginfield.HasTextCode(err, loginfield.TextCodeInvalidLogin))

	_, err = store.Create(context.Background(), nil)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryBadInput))
}

func TestAccountsCreateTakenLogin(t *testing.T) {
	ctx := context.Background()
	store := setupAccounts(t, loginfield.CustomField("username"))

	_, err := store.Register(ctx, "octocat", "password123")
	require.NoError(t, err)

	// Create skips the lookup Register does, the unique index rejects it
	_, err = store.Create(ctx, &Account{Login: "octocat"})
	assert.ErrorIs(t, err, loginfield.ErrLoginTaken)
}

func TestAccountsCreateDatabaseFailureIsInternal(t *testing.T) {
	store := setupAccounts(t, loginfield.CustomField("username"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Create(ctx, &Account{Login: "octocat"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, loginfield.ErrLoginTaken)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryInternal))
}

func TestAccountsHashidIDs(t *testing.T) {
	store := setupAccounts(t, loginfield.StandardEmail(), WithHashidIDs())

	account, err := store.Register(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)

	expected, err := hashid.NewUUID("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, expected, account.ID)
}

func TestAccountsAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := setupAccounts(t, loginfield.CustomField("username"))

	_, err := store.Register(ctx, "octocat", "password123")
	require.NoError(t, err)

	account, err := store.Authenticate(ctx, "octocat", "password123")
	require.NoError(t, err)
	assert.NotNil(t, account.LoggedInAt)
	assert.Zero(t, account.LoginAttempts)

	_, err = store.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, loginfield.ErrMismatchedHashAndPassword)
}

func TestAccountsAuthenticateTracksAttempts(t *testing.T) {
	ctx := context.Background()

	prev := MaxLoginAttempts
	MaxLoginAttempts = 1
	t.Cleanup(func() { MaxLoginAttempts = prev })

	now := time.Now()
	store := setupAccounts(t, loginfield.StandardEmail(), WithClock(func() time.Time { return now }))

	_, err := store.Register(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = store.Authenticate(ctx, "user@example.com", "wrong-password")
		assert.ErrorIs(t, err, loginfield.ErrMismatchedHashAndPassword)
	}

	found, err := store.GetByLogin(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, found.LoginAttempts)

	_, err = store.Authenticate(ctx, "user@example.com", "password123")
	assert.ErrorIs(t, err, loginfield.ErrTooManyLoginAttempts)

	// once the cool down is over the account can log in again
	now = now.Add(CoolDownPeriod + time.Minute)
	_, err = store.Authenticate(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	found, err = store.GetByLogin(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Zero(t, found.LoginAttempts)
	assert.Nil(t, found.LoginAttemptAt)
}

func TestAccountMetadata(t *testing.T) {
	a := &Account{}
	a.AddMetadata("source", "import").AddMetadata("tier", 2)
	assert.Equal(t, map[string]any{"source": "import", "tier": 2}, a.Metadata)
}
