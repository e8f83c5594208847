package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Ticketmaster TicketmasterConfig `toml:"ticketmaster"`
	Google       GoogleConfig       `toml:"google"`
}

// TicketmasterConfig contains Discovery API credentials.
type TicketmasterConfig struct {
	APIKey string `toml:"api_key"`
}

// GoogleConfig contains Google OAuth2 and Calendar API credentials.
type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	APIKey       string `toml:"api_key"`
	RedirectURI  string `toml:"redirect_uri"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Secrets may also be supplied through the environment (see ApplyEnv); a .env
// file next to the binary is honored when present.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.ApplyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads a .env file into the process environment when one exists.
// Missing files are not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides configuration values from the process environment.
//
// Recognized variables: GIGCAL_TICKETMASTER_API_KEY, GIGCAL_GOOGLE_CLIENT_ID,
// GIGCAL_GOOGLE_CLIENT_SECRET, GIGCAL_GOOGLE_API_KEY, GIGCAL_REDIRECT_URI,
// GIGCAL_PORT.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GIGCAL_TICKETMASTER_API_KEY"); v != "" {
		c.Credentials.Ticketmaster.APIKey = v
	}
	if v := os.Getenv("GIGCAL_GOOGLE_CLIENT_ID"); v != "" {
		c.Credentials.Google.ClientID = v
	}
	if v := os.Getenv("GIGCAL_GOOGLE_CLIENT_SECRET"); v != "" {
		c.Credentials.Google.ClientSecret = v
	}
	if v := os.Getenv("GIGCAL_GOOGLE_API_KEY"); v != "" {
		c.Credentials.Google.APIKey = v
	}
	if v := os.Getenv("GIGCAL_REDIRECT_URI"); v != "" {
		c.Credentials.Google.RedirectURI = v
	}
	if v := os.Getenv("GIGCAL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// Validate fails fast when any of the four required secrets is absent.
func (c *Config) Validate() error {
	if c.Credentials.Ticketmaster.APIKey == "" {
		return fmt.Errorf("%w: ticketmaster api_key", ErrMissingCredentials)
	}
	if c.Credentials.Google.ClientID == "" {
		return fmt.Errorf("%w: google client_id", ErrMissingCredentials)
	}
	if c.Credentials.Google.ClientSecret == "" {
		return fmt.Errorf("%w: google client_secret", ErrMissingCredentials)
	}
	if c.Credentials.Google.APIKey == "" {
		return fmt.Errorf("%w: google api_key", ErrMissingCredentials)
	}
	return nil
}
