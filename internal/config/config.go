package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
// SecretKey doubles as the JWT signing secret and the input to the
// note-content key derivation; Salt only feeds the derivation.  Neither
// has a built-in default and neither is ever written to a log line.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	SecretKey         string // secret used to sign JWTs and derive the content key
	Salt              string // salt fed to the content key derivation
	AccessTTLMin      int    // access token time‑to‑live in minutes
	BcryptCost        int    // bcrypt cost for password hashing
	EncryptionEnabled bool   // whether note content is encrypted at rest
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message; refusing to start is
// the only safe response to a missing secret, since falling back to a
// default would sign every token with a knowable key.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),                       // environment (dev/test/prod)
		Port:              must("APP_PORT"),                      // port to bind the HTTP server
		DBUser:            must("DB_USER"),                       // database user
		DBPass:            os.Getenv("DB_PASS"),                  // database password (empty allowed)
		DBHost:            must("DB_HOST"),                       // database host
		DBPort:            must("DB_PORT"),                       // database port
		DBName:            must("DB_NAME"),                       // database name
		SecretKey:         must("SECRET_KEY"),                    // signing/derivation secret
		Salt:              must("SALT"),                          // key derivation salt
		AccessTTLMin:      getenvInt("ACCESS_TOKEN_TTL_MIN", 30), // TTL for access tokens in minutes
		BcryptCost:        mustInt("BCRYPT_COST"),                // bcrypt cost factor
		EncryptionEnabled: getenv("ENCRYPTION_ENABLED", "true") == "true",
	}
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenv returns the variable's value or a default when unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv for integer variables; unparseable values
// fall back to the default.
func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
