package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	JWTSecret string

	StorageBaseURL    string
	StorageServiceKey string

	AuthBaseURL    string
	AuthServiceKey string

	IdempTTLSecs      int
	SweepIntervalSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lms"),
		MySQLUser: getenv("MYSQL_USER", "lms"),
		MySQLPass: getenv("MYSQL_PASS", "lms"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisPass: os.Getenv("REDIS_PASS"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StorageBaseURL:    os.Getenv("STORAGE_BASE_URL"),
		StorageServiceKey: os.Getenv("STORAGE_SERVICE_KEY"),

		// The auth service shares the storage deployment unless overridden.
		AuthBaseURL:    getenv("AUTH_BASE_URL", os.Getenv("STORAGE_BASE_URL")),
		AuthServiceKey: getenv("AUTH_SERVICE_KEY", os.Getenv("STORAGE_SERVICE_KEY")),

		IdempTTLSecs:      getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		SweepIntervalSecs: getenvInt("SWEEP_INTERVAL_SECONDS", 3600),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.StorageBaseURL == "" || c.StorageServiceKey == "" {
		return errors.New("missing storage config (STORAGE_BASE_URL/STORAGE_SERVICE_KEY)")
	}
	if c.SweepIntervalSecs <= 0 {
		return errors.New("SWEEP_INTERVAL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
