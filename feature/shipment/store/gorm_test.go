package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"shipment-gateway/feature/shipment/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite DB private to the test.
func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func TestGormStore_Contract(t *testing.T) {
	runStoreContract(t, NewGormStore(setupTestDB(t, "store_contract")))
}

func TestGormStore_CountQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `shipments` WHERE shipment_status <> ?")).
		WithArgs(string(models.StatusCanceled)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := s.Count(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_TouchUsesSingleStatement(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `shipments` SET `sync_date`=? WHERE shipment_id IN (?,?,?)")).
		WithArgs(day, "a", "b", "c").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, s.Touch(context.Background(), []string{"a", "b", "c"}, day))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UpdateStatusError(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `shipments` SET `shipment_status`=? WHERE shipment_id = ?")).
		WithArgs(string(models.StatusCanceled), "se-1").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := s.UpdateStatus(context.Background(), "se-1", models.StatusCanceled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_EmptyWritesAreNoops(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewGormStore(db)

	assert.NoError(t, s.BulkInsert(context.Background(), nil))
	assert.NoError(t, s.Touch(context.Background(), nil, day))
	assert.NoError(t, mock.ExpectationsWereMet())
}
