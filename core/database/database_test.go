package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "shipments",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		_, err := Connect(Config{Driver: DriverMongo})
		assert.ErrorContains(t, err, "unsupported")
	})
}

func TestConfig_IsSQL(t *testing.T) {
	assert.True(t, Config{Driver: DriverMySQL}.IsSQL())
	assert.True(t, Config{Driver: DriverPostgres}.IsSQL())
	assert.True(t, Config{Driver: DriverSQLite}.IsSQL())
	assert.False(t, Config{Driver: DriverMongo}.IsSQL())
	assert.False(t, Config{Driver: DriverMemory}.IsSQL())
}

func TestDialectorFor(t *testing.T) {
	d, err := dialectorFor(Config{Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p@ss", Name: "shipments"}, 5)
	assert.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = dialectorFor(Config{Driver: DriverMySQL, Host: "db", Port: 3306, User: "u", Name: "shipments"}, 5)
	assert.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}
