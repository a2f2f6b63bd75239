package db

import "time"

type Config struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"pgx"`             // Driver is "pgx" or "mysql".
	DSN             string        `env:"DB_DSN"`                                 // DSN enables the accessor when set.
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`      // MaxOpenConns caps open connections.
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`       // MaxIdleConns caps idle connections.
	ConnMaxIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m"` // ConnMaxIdleTime closes connections idle this long.
	ConnMaxLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`  // ConnMaxLifetime recycles connections this old.
	RetryAttempts   int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`       // RetryAttempts is the number of connection attempts.
	RetryInterval   time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"`      // RetryInterval grows linearly between attempts.
}

// Enabled reports whether a DSN is configured.
func (c Config) Enabled() bool {
	return c.DSN != ""
}
