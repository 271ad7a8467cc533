package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(gdb), "failed to migrate test database")
	return gdb
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gdb.Model(model).Count(&count).Error)
	return count
}

func TestSeedInitialDataPopulatesEmptyTables(t *testing.T) {
	gdb := setupTestDB(t)
	store := New(gdb)
	ctx := context.Background()

	require.NoError(t, store.SeedInitialData(ctx))

	content, err := store.GetContent(ctx)
	require.NoError(t, err)
	sections := make([]string, 0, len(content))
	for _, c := range content {
		sections = append(sections, c.Section)
	}
	assert.ElementsMatch(t, []string{"hero_tagline", "about", "work"}, sections)

	skills, err := store.GetSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 4)
	for i, s := range skills {
		assert.Equal(t, i+1, s.Order)
	}
}

func TestSeedInitialDataIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	store := New(gdb)
	ctx := context.Background()

	require.NoError(t, store.SeedInitialData(ctx))
	require.NoError(t, store.SeedInitialData(ctx))

	assert.Equal(t, int64(3), countRows(t, gdb, &models.Content{}))
	assert.Equal(t, int64(4), countRows(t, gdb, &models.Skill{}))
}

func TestSeedInitialDataDoesNotBackfillPartialTables(t *testing.T) {
	gdb := setupTestDB(t)
	store := New(gdb)
	ctx := context.Background()

	require.NoError(t, store.SeedInitialData(ctx))
	require.NoError(t, gdb.Where("name = ?", "Game Development").Delete(&models.Skill{}).Error)
	require.NoError(t, gdb.Where("section = ?", "about").Delete(&models.Content{}).Error)

	require.NoError(t, store.SeedInitialData(ctx))

	assert.Equal(t, int64(2), countRows(t, gdb, &models.Content{}))
	assert.Equal(t, int64(3), countRows(t, gdb, &models.Skill{}))
}

func TestSeedInitialDataSeedsEachTableIndependently(t *testing.T) {
	gdb := setupTestDB(t)
	store := New(gdb)
	ctx := context.Background()

	require.NoError(t, store.SkillRepo().AddAll(ctx, []models.Skill{{Name: "Go", Order: 1}}))
	require.NoError(t, store.SeedInitialData(ctx))

	assert.Equal(t, int64(3), countRows(t, gdb, &models.Content{}))
	assert.Equal(t, int64(1), countRows(t, gdb, &models.Skill{}))
}

func TestGetSkillsOrdersByOrderRegardlessOfInsertion(t *testing.T) {
	gdb := setupTestDB(t)
	store := New(gdb)
	ctx := context.Background()

	require.NoError(t, store.SkillRepo().AddAll(ctx, []models.Skill{
		{Name: "third", Order: 30},
		{Name: "first", Order: -1},
		{Name: "second-a", Order: 7},
		{Name: "second-b", Order: 7},
	}))

	skills, err := store.GetSkills(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"first", "second-a", "second-b", "third"}, names)
}

func TestGetContentReturnsEmptySliceWhenNoRows(t *testing.T) {
	store := New(setupTestDB(t))

	content, err := store.GetContent(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, content)
	assert.Empty(t, content)
}

func TestSaveMessagePersistsExactlyOneRow(t *testing.T) {
	gdb := setupTestDB(t)
	store := New(gdb)
	ctx := context.Background()

	require.NoError(t, store.SaveMessage(ctx, models.InsertContactMessage{
		Name: "Ada", Email: "ada@example.com", Message: "Hi",
	}))

	var saved []models.ContactMessage
	require.NoError(t, gdb.Find(&saved).Error)
	require.Len(t, saved, 1)
	assert.NotZero(t, saved[0].ID)
	assert.Equal(t, "ada@example.com", saved[0].Email)
	assert.False(t, saved[0].CreatedAt.IsZero())
}

func TestSectionIsUnique(t *testing.T) {
	gdb := setupTestDB(t)
	store := New(gdb)
	ctx := context.Background()

	require.NoError(t, store.ContentRepo().AddAll(ctx, []models.Content{{Section: "about", Text: "a"}}))
	assert.Error(t, store.ContentRepo().AddAll(ctx, []models.Content{{Section: "about", Text: "b"}}))
}

func TestSaveMessageReportsStorageErrorWhenWriteRejected(t *testing.T) {
	gdb, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "contact_messages"`)).
		WillReturnError(errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	err := New(gdb).SaveMessage(context.Background(), models.InsertContactMessage{
		Name: "Ada", Email: "ada@example.com", Message: "Hi",
	})

	require.Error(t, err)
	assert.True(t, errs.IsStorageError(err))
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetContentReportsStorageErrorWhenUnreachable(t *testing.T) {
	gdb, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "content"`)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := New(gdb).GetContent(context.Background())

	assert.True(t, errs.IsStorageError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedInitialDataTakesAdvisoryLockOnPostgres(t *testing.T) {
	gdb, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(seedLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "content"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "skills"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectCommit()

	require.NoError(t, New(gdb).SeedInitialData(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedInitialDataRollsBackWhenLockFails(t *testing.T) {
	gdb, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WillReturnError(errors.New("canceling statement due to lock timeout"))
	mock.ExpectRollback()

	err := New(gdb).SeedInitialData(context.Background())
	assert.True(t, errs.IsStorageError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenRejectsUnknownDBType(t *testing.T) {
	_, err := Open(map[string]string{"DB_TYPE": "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_TYPE")
}

func TestOpenRequiresDatabaseURLForPostgres(t *testing.T) {
	_, err := Open(map[string]string{"DB_TYPE": "postgres"})
	assert.ErrorIs(t, err, errs.ErrConfigMissing)
}

func TestOpenSQLite(t *testing.T) {
	gdb, err := Open(map[string]string{"DB_TYPE": "sqlite", "SQLITE_PATH": t.TempDir() + "/portfolio.db"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, Migrate(gdb))
	assert.True(t, gdb.Migrator().HasTable("contact_messages"))
}
