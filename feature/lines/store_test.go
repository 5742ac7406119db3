package lines

import (
	"context"
	"errors"
	"testing"
	"time"

	"mango-sync/core/database"
	"mango-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = time.Date(2024, 3, 2, 11, 30, 0, 0, time.UTC)
)

func strPtr(s string) *string { return &s }

// setupTestStore opens an in-memory SQLite database with the table migrated.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))
	store.now = func() time.Time { return t0 }
	return store
}

// setupMockStore returns a store backed by sqlmock through the MySQL dialector.
func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	store := NewStore(db)
	store.now = func() time.Time { return t1 }
	return store, mock
}

func sampleLine() reconcile.Line {
	return reconcile.Line{
		RemoteID:   42,
		Number:     "100",
		Name:       strPtr("A"),
		Region:     "RU",
		SchemaID:   1,
		SchemaName: "S",
	}
}

func TestStore_CreateAndFind(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	missing, err := store.FindByNumber(ctx, "100")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Create(ctx, sampleLine()))

	row, err := store.FindByNumber(ctx, "100")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, int64(42), row.LineID)
	assert.Equal(t, "100", row.Number)
	require.NotNil(t, row.Name)
	assert.Equal(t, "A", *row.Name)
	assert.Nil(t, row.Comment)
	assert.Equal(t, "RU", row.Region)
	assert.Equal(t, int64(1), row.SchemaID)
	assert.Equal(t, "S", row.SchemaName)
	assert.WithinDuration(t, t0, row.CreatedAt, time.Second)
	assert.WithinDuration(t, t0, row.UpdatedAt, time.Second)
}

func TestStore_CreateDuplicateNumber(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sampleLine()))

	dup := sampleLine()
	dup.RemoteID = 99
	err := store.Create(ctx, dup)
	assert.ErrorContains(t, err, "failed to create number 100")

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_Update(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sampleLine()))
	existing, err := store.FindByNumber(ctx, "100")
	require.NoError(t, err)

	store.now = func() time.Time { return t1 }
	changed := reconcile.Line{
		RemoteID:   43,
		Number:     "100",
		Name:       strPtr("B"),
		Comment:    strPtr("moved to night scheme"),
		Region:     "KZ",
		SchemaID:   2,
		SchemaName: "Night",
	}
	require.NoError(t, store.Update(ctx, existing, changed))

	// In-memory row reflects the write
	assert.Equal(t, "B", *existing.Name)
	assert.Equal(t, t1, existing.UpdatedAt)

	row, err := store.FindByNumber(ctx, "100")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, existing.ID, row.ID)
	assert.Equal(t, int64(43), row.LineID)
	assert.Equal(t, "B", *row.Name)
	assert.Equal(t, "moved to night scheme", *row.Comment)
	assert.Equal(t, "KZ", row.Region)
	assert.Equal(t, int64(2), row.SchemaID)
	assert.Equal(t, "Night", row.SchemaName)
	assert.WithinDuration(t, t0, row.CreatedAt, time.Second, "created_at is untouched")
	assert.WithinDuration(t, t1, row.UpdatedAt, time.Second)
}

func TestStore_UpdateClearsOptionalFields(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	line := sampleLine()
	line.Comment = strPtr("temp")
	require.NoError(t, store.Create(ctx, line))
	existing, err := store.FindByNumber(ctx, "100")
	require.NoError(t, err)

	line.Name = nil
	line.Comment = nil
	require.NoError(t, store.Update(ctx, existing, line))

	row, err := store.FindByNumber(ctx, "100")
	require.NoError(t, err)
	assert.Nil(t, row.Name)
	assert.Nil(t, row.Comment)
}

func TestStore_VerifySchema(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	defer database.Close(db)

	store := NewStore(db)
	ctx := context.Background()

	assert.ErrorContains(t, store.VerifySchema(ctx), "does not exist")

	require.NoError(t, db.Exec("CREATE TABLE mango_office__phone_numbers (id INTEGER PRIMARY KEY, number TEXT)").Error)
	err = store.VerifySchema(ctx)
	assert.ErrorContains(t, err, "missing columns: line_id, name")

	require.NoError(t, db.Exec("DROP TABLE mango_office__phone_numbers").Error)
	require.NoError(t, store.Migrate(ctx))
	assert.NoError(t, store.VerifySchema(ctx))
}

func TestStore_CreateFailureRollsBack(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `mango_office__phone_numbers`").WillReturnError(errors.New("Duplicate entry '100'"))
	mock.ExpectRollback()

	err := store.Create(context.Background(), sampleLine())
	assert.ErrorContains(t, err, "Duplicate entry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateFailureRollsBack(t *testing.T) {
	store, mock := setupMockStore(t)

	existing := &PhoneNumber{ID: 7, LineID: 42, Number: "100", Name: strPtr("A"), Region: "RU", SchemaID: 1, SchemaName: "S", UpdatedAt: t0}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `mango_office__phone_numbers` SET").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	changed := sampleLine()
	changed.Name = strPtr("B")
	err := store.Update(context.Background(), existing, changed)
	assert.ErrorContains(t, err, "failed to update number 100")
	assert.ErrorContains(t, err, "lock wait timeout")

	// Nothing is applied to the in-memory row on failure
	assert.Equal(t, "A", *existing.Name)
	assert.Equal(t, t0, existing.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateVanishedRow(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `mango_office__phone_numbers` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.Update(context.Background(), &PhoneNumber{ID: 7, Number: "100"}, sampleLine())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindByNumberError(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `mango_office__phone_numbers` WHERE number = \\?").
		WithArgs("100", 1).
		WillReturnError(errors.New("connection reset"))

	row, err := store.FindByNumber(context.Background(), "100")
	assert.Nil(t, row)
	assert.ErrorContains(t, err, "failed to fetch number 100: connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
