package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
)

// setupReturnTestDB creates an in-memory SQLite database for testing
func setupReturnTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE returns (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			number INTEGER NOT NULL UNIQUE,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			customer_phone TEXT,
			order_reference TEXT,
			description TEXT NOT NULL,
			resolution TEXT NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE return_items (
			id TEXT PRIMARY KEY,
			return_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			variation_id TEXT,
			product_name TEXT NOT NULL,
			sku TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			reason TEXT NOT NULL,
			condition TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE return_status_history (
			id TEXT PRIMARY KEY,
			return_id TEXT NOT NULL,
			status TEXT NOT NULL,
			note TEXT,
			author TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE return_notes (
			id TEXT PRIMARY KEY,
			return_id TEXT NOT NULL,
			author TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE return_images (
			id TEXT PRIMARY KEY,
			return_id TEXT NOT NULL,
			url TEXT NOT NULL,
			filename TEXT,
			created_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func buildReturn(t *testing.T, number int64) *returns.Return {
	t.Helper()
	item, err := returns.NewReturnItem(uuid.New(), nil, "Gift Card", "GIFT-01", 2, returns.ReasonWrongItem, "unopened")
	require.NoError(t, err)
	ret, err := returns.NewReturn(number, "Jane Doe", "jane@example.com", "+1 555 0100", "ORD-1001",
		"Received the wrong denomination", returns.ResolutionExchange, []returns.ReturnItem{*item})
	require.NoError(t, err)
	_, err = ret.AttachImage("https://cdn.example.com/returns/card.jpg", "card.jpg")
	require.NoError(t, err)
	return ret
}

func TestGormReturnRepository_CreateAndFind(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)
	ctx := context.Background()

	ret := buildReturn(t, 42)
	require.NoError(t, repo.Create(ctx, ret))

	byID, err := repo.FindByID(ctx, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), byID.Number)
	assert.Equal(t, returns.StatusPending, byID.Status)
	require.Len(t, byID.Items, 1)
	assert.Equal(t, "GIFT-01", byID.Items[0].SKU)
	require.Len(t, byID.History, 1)
	assert.Equal(t, returns.SystemActor, byID.History[0].Author)
	require.Len(t, byID.Images, 1)

	byNumber, err := repo.FindByNumber(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, ret.ID, byNumber.ID)
}

func TestGormReturnRepository_FindByNumber_NotFound(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)

	_, err := repo.FindByNumber(context.Background(), 999999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormReturnRepository_RecordTransition(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)
	ctx := context.Background()

	ret := buildReturn(t, 42)
	require.NoError(t, repo.Create(ctx, ret))

	entry, err := ret.Transition(returns.StatusApproved, "looks fine", "Admin")
	require.NoError(t, err)
	require.NoError(t, repo.RecordTransition(ctx, ret.ID, ret.Status, *entry))

	reloaded, err := repo.FindByID(ctx, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, returns.StatusApproved, reloaded.Status)
	require.Len(t, reloaded.History, 2)
	assert.Equal(t, returns.StatusApproved, reloaded.History[1].Status)
	assert.Equal(t, "Admin", reloaded.History[1].Author)
	assert.Equal(t, 2, reloaded.Version)
}

func TestGormReturnRepository_RecordTransition_UnknownReturn(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)

	entry := returns.StatusHistoryEntry{
		ID:        uuid.New(),
		Status:    returns.StatusApproved,
		Author:    "Admin",
		CreatedAt: time.Now(),
	}
	err := repo.RecordTransition(context.Background(), uuid.New(), returns.StatusApproved, entry)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormReturnRepository_AddNote(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)
	ctx := context.Background()

	ret := buildReturn(t, 42)
	require.NoError(t, repo.Create(ctx, ret))

	note, err := ret.AddNote("Admin", "customer called about this one")
	require.NoError(t, err)
	require.NoError(t, repo.AddNote(ctx, *note))

	reloaded, err := repo.FindByID(ctx, ret.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Notes, 1)
	assert.Equal(t, "customer called about this one", reloaded.Notes[0].Body)
}

func TestGormReturnRepository_FindAll_FiltersByStatus(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)
	ctx := context.Background()

	first := buildReturn(t, 1)
	require.NoError(t, repo.Create(ctx, first))
	second := buildReturn(t, 2)
	require.NoError(t, repo.Create(ctx, second))

	entry, err := second.Transition(returns.StatusApproved, "", "Admin")
	require.NoError(t, err)
	require.NoError(t, repo.RecordTransition(ctx, second.ID, second.Status, *entry))

	status := returns.StatusApproved
	rows, total, err := repo.FindAll(ctx, returns.Filter{Status: &status, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].ID)
}

func TestGormReturnRepository_CountByStatus(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, buildReturn(t, 1)))
	require.NoError(t, repo.Create(ctx, buildReturn(t, 2)))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[returns.StatusPending])
}

func TestGormReturnRepository_Delete_RemovesChildren(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)
	ctx := context.Background()

	ret := buildReturn(t, 42)
	require.NoError(t, repo.Create(ctx, ret))
	require.NoError(t, repo.Delete(ctx, ret.ID))

	_, err := repo.FindByID(ctx, ret.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Table("return_items").Where("return_id = ?", ret.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
	var historyCount int64
	require.NoError(t, db.Table("return_status_history").Where("return_id = ?", ret.ID).Count(&historyCount).Error)
	assert.Zero(t, historyCount)
}

func TestGormReturnRepository_HasItemsForProduct(t *testing.T) {
	db := setupReturnTestDB(t)
	repo := NewGormReturnRepository(db)
	ctx := context.Background()

	ret := buildReturn(t, 42)
	require.NoError(t, repo.Create(ctx, ret))

	referenced, err := repo.HasItemsForProduct(ctx, ret.Items[0].ProductID)
	require.NoError(t, err)
	assert.True(t, referenced)

	other, err := repo.HasItemsForProduct(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, other)
}

func TestGormReturnRepository_NextNumber(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	repo := NewGormReturnRepository(gormDB)

	mock.ExpectQuery(`SELECT nextval\('return_number_seq'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(43)))

	number, err := repo.NextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(43), number)
	assert.NoError(t, mock.ExpectationsWereMet())
}
