// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config
// file, and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/kelseyhightower/envconfig"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// DataDir is the directory holding inventory.json and history.json.
	DataDir string `json:"data_dir"`

	// LogLevel is the zap log level ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level"`

	// Config is the path to the config file.
	Config string `json:"-"`

	// Settings carries the environment-driven values (credentials,
	// mail setup, retention). Never read from the config file.
	Settings Settings `json:"-"`
}

// Settings are populated from the environment via envconfig. Secrets and
// site-specific addresses live here rather than in flags or the config
// file.
type Settings struct {
	// SessionKey signs session cookies. A random key is generated at
	// startup when empty, which invalidates sessions on restart.
	SessionKey string `envconfig:"SESSION_KEY"`

	// AdminNTID is the NT ID announced as the admin account.
	AdminNTID string `envconfig:"ADMIN_NT_ID" default:"ADMIN"`
	// AdminPassword guards admin logins.
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"Admin@123"`

	SMTPServer   string `envconfig:"SMTP_SERVER"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"25"`
	SMTPUseTLS   bool   `envconfig:"SMTP_USE_TLS"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	// AdminEmail and ManagerEmail are copied on every notification.
	AdminEmail   string `envconfig:"ADMIN_EMAIL"`
	ManagerEmail string `envconfig:"MANAGER_EMAIL"`
	SenderEmail  string `envconfig:"SENDER_EMAIL"`
	// EmailDomain is appended to an NT ID to form the actor's address.
	EmailDomain string `envconfig:"EMAIL_DOMAIN" default:"@example.com"`
	// NotifyEnabled turns outgoing mail on. Off by default.
	NotifyEnabled bool `envconfig:"NOTIFY_ENABLED"`

	// HistoryKeep caps history.json to the newest N entries when > 0.
	HistoryKeep int `envconfig:"HISTORY_KEEP"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DataDir, "d", "data", "directory for the JSON documents")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file, and the
// environment to set configuration values. It returns a pointer to the
// Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		options.DataDir = dataDir
	}

	if err := loadSettings(&options.Settings); err != nil {
		log.Fatalf("error while reading environment settings: %v", err)
	}

	return options
}

// loadSettings fills s from the process environment.
func loadSettings(s *Settings) error {
	return envconfig.Process("", s)
}
