package database

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongodb"
	DriverMemory   = "memory"
)

// Config holds configuration for the mirror database connection.
type Config struct {
	// Driver is one of mysql, postgres, sqlite, mongodb or memory.
	Driver string `mapstructure:"driver" default:"mysql"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"shipments"`
	// URI is the mongodb connection string.
	URI string `mapstructure:"uri" default:"mongodb://localhost:27017"`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// IsSQL reports whether the driver is served through gorm.
func (c Config) IsSQL() bool {
	switch c.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
		return true
	default:
		return false
	}
}
