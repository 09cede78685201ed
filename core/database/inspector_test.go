package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT, description TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["description"])

	// PRAGMA table_info returns no rows for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE shipments (shipment_id TEXT PRIMARY KEY, sync_date DATETIME)").Error)

	missing, err := MissingColumns(db, "shipments", []string{"shipment_id", "SYNC_DATE", "shipment_status"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"shipment_status"}, missing)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("Shipment_ID", "VARCHAR(64)", "NO", "PRI", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `shipments`").WillReturnRows(rows)

	cols, err := GetTableColumns(db, "shipments")
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "shipment_id", cols[0].Field)
	assert.Equal(t, "varchar(64)", cols[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
