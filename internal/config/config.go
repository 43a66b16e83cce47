package config // package config loads application configuration from environment variables

import (
	"log"  // log is used to report configuration errors and halt execution
	"os"   // os provides access to environment variables
	"time" // time resolves the configured timezone

	"github.com/joho/godotenv" // godotenv loads a local .env file into the environment
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Redis, cache, rate limit and broker settings are
// loaded separately by their own Load* functions.
type Config struct {
	Env       string         // application environment (e.g. "dev", "prod")
	Port      string         // HTTP port to listen on
	Location  *time.Location // timezone used to decide what "today" is
	DBUser    string         // database username
	DBPass    string         // database password (optional)
	DBHost    string         // database host address
	DBPort    string         // database port number
	DBName    string         // database name
	DBMigrate bool           // apply embedded schema migrations at startup
	LogLevel  string         // zerolog level (debug, info, warn, error)
	LogFormat string         // "console" or "json"
}

// LoadDotEnv loads variables from the given files (default ".env") into the
// process environment.  Variables that are already set win.  A missing file
// is not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Printf("config: could not load %s: %v", f, err)
		}
	}
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	env := envStr("APP_ENV", "dev")
	return Config{
		Env:       env,                                 // environment (dev/test/prod)
		Port:      envStr("APP_PORT", "8080"),          // port to bind the HTTP server
		Location:  mustLocation("APP_TIMEZONE"),        // "today" for date rules
		DBUser:    must("DB_USER"),                     // database user
		DBPass:    os.Getenv("DB_PASS"),                // database password (empty allowed)
		DBHost:    must("DB_HOST"),                     // database host
		DBPort:    envStr("DB_PORT", "3306"),           // database port
		DBName:    must("DB_NAME"),                     // database name
		DBMigrate: envBool("DB_MIGRATE", true),         // run migrations on start
		LogLevel:  envStr("LOG_LEVEL", "info"),         // log level
		LogFormat: envStr("LOG_FORMAT", defaultLogFormat(env)),
	}
}

func defaultLogFormat(env string) string {
	if env == "dev" {
		return "console"
	}
	return "json"
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustLocation resolves an IANA timezone name.  An unset variable means the
// host's local zone, matching how the sales desk reads its own calendar.
func mustLocation(key string) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid timezone for %s: %q", key, name)
	}
	return loc
}
