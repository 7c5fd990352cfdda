package database

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/Notifuse/newsletter/config"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// GetConnectionPoolSettings returns connection pool settings based on environment.
// Supabase's pooler caps connections per project, so production stays modest.
func GetConnectionPoolSettings() (maxOpen, maxIdle int, maxLifetime time.Duration) {
	environment := os.Getenv("ENVIRONMENT")

	if environment == "test" || os.Getenv("INTEGRATION_TESTS") == "true" {
		return 5, 2, 2 * time.Minute
	}

	return 15, 5, 15 * time.Minute
}

// GetDSN returns the DSN for the application database
func GetDSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// MaskedDSN is GetDSN with the password hidden, for logs
func MaskedDSN(cfg *config.DatabaseConfig) string {
	masked := *cfg
	if masked.Password != "" {
		masked.Password = "xxxxx"
	}
	return GetDSN(&masked)
}
