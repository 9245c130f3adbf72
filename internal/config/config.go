// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"flag"
	"log"
	"os"
	"strings"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// AnkiConnectURL is the endpoint of the upstream flashcard engine.
	AnkiConnectURL string

	// SessionSecret is the key used to sign session cookies.
	SessionSecret string

	// Username is the login of the single allowed operator.
	Username string

	// Password is the password of the single allowed operator.
	Password string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8000", "run on ip:port server")
}

// Parse parses the command-line flags and required environment variables and
// returns a pointer to the Options struct containing the resulting values.
// The process aborts if any of ANKI_CONNECT_URL, SESSION_SECRET, APP_USERNAME
// or APP_PASSWORD is unset.
func Parse() *Options {
	flag.Parse()

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}

	required := []struct {
		name string
		dst  *string
	}{
		{"ANKI_CONNECT_URL", &options.AnkiConnectURL},
		{"SESSION_SECRET", &options.SessionSecret},
		{"APP_USERNAME", &options.Username},
		{"APP_PASSWORD", &options.Password},
	}

	var missing []string
	for _, env := range required {
		v, ok := os.LookupEnv(env.name)
		if !ok || v == "" {
			missing = append(missing, env.name)
			continue
		}
		*env.dst = v
	}
	if len(missing) > 0 {
		log.Fatalf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	return options
}
