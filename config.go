package duckhttp

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const DefaultMaxInFlight = 10

// Config describes one connection to a DuckDB HTTP endpoint. The password
// doubles as the API key when present. Config values are fixed at client
// construction time.
type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	ReadOnly    bool
	TLS         bool
	Timeout     time.Duration
	MaxInFlight int64
	StrictWidth bool
}

// ParseDSN parses a space-separated key=value connection string, e.g.
// "host=localhost port=9999 password=secret read_only=true".
func ParseDSN(name string) (Config, error) {
	args := make(map[string]string)

	for _, pair := range strings.Split(name, " ") {
		kv := strings.SplitN(pair, "=", 2)

		if len(kv) == 2 {
			args[kv[0]] = kv[1]
		}
	}

	if args["host"] == "" {
		return Config{}, errors.New("host is required")
	}

	config := Config{
		Host:     args["host"],
		User:     args["user"],
		Password: args["password"],
		ReadOnly: strings.EqualFold(args["read_only"], "true"),
		TLS:      strings.EqualFold(args["tls"], "true"),
	}

	if args["port"] != "" {
		port, err := strconv.Atoi(args["port"])

		if err != nil {
			return Config{}, fmt.Errorf("invalid port %q: %w", args["port"], err)
		}

		config.Port = port
	}

	if args["timeout"] != "" {
		timeout, err := time.ParseDuration(args["timeout"])

		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout %q: %w", args["timeout"], err)
		}

		config.Timeout = timeout
	}

	return config, nil
}

// FromEnv builds a Config from DUCKHTTP_* environment variables. A .env
// file in the working directory is loaded first when present.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	config := Config{
		Host:     os.Getenv("DUCKHTTP_HOST"),
		User:     os.Getenv("DUCKHTTP_USER"),
		Password: os.Getenv("DUCKHTTP_PASSWORD"),
		ReadOnly: strings.EqualFold(os.Getenv("DUCKHTTP_READ_ONLY"), "true"),
		TLS:      strings.EqualFold(os.Getenv("DUCKHTTP_TLS"), "true"),
	}

	if config.Host == "" {
		return Config{}, errors.New("DUCKHTTP_HOST is not set")
	}

	if port := os.Getenv("DUCKHTTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)

		if err != nil {
			return Config{}, fmt.Errorf("invalid DUCKHTTP_PORT %q: %w", port, err)
		}

		config.Port = p
	}

	return config, nil
}

// URL builds the endpoint URL queries are posted to.
func (c Config) URL() string {
	scheme := "http"

	if c.TLS {
		scheme = "https"
	}

	if c.Port > 0 {
		return fmt.Sprintf("%s://%s:%d/", scheme, c.Host, c.Port)
	}

	return fmt.Sprintf("%s://%s/", scheme, c.Host)
}

// APIKey returns the credential sent in the X-API-Key header, or an empty
// string when the connection is unauthenticated.
func (c Config) APIKey() string {
	return c.Password
}

// Profiles is a YAML file mapping profile names to connection settings,
// used by the CLI. Values may reference environment variables with
// ${VAR} syntax.
type Profiles struct {
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile is one named connection in a profiles file.
type Profile struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	ReadOnly bool   `yaml:"read_only"`
	TLS      bool   `yaml:"tls"`
	Timeout  string `yaml:"timeout"`
}

// LoadProfiles reads a profiles file, expanding ${VAR} references from the
// environment. A .env file in the working directory is loaded first so
// profiles can reference credentials kept out of the YAML.
func LoadProfiles(path string) (*Profiles, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var profiles Profiles

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}

	return &profiles, nil
}

// Resolve returns the Config for the named profile, or for the file's
// default profile when name is empty.
func (p *Profiles) Resolve(name string) (Config, error) {
	if name == "" {
		name = p.Default
	}

	profile, ok := p.Profiles[name]

	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}

	config := Config{
		Host:     profile.Host,
		Port:     profile.Port,
		User:     profile.User,
		Password: profile.Password,
		ReadOnly: profile.ReadOnly,
		TLS:      profile.TLS,
	}

	if profile.Timeout != "" {
		timeout, err := time.ParseDuration(profile.Timeout)

		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout %q in profile %q: %w", profile.Timeout, name, err)
		}

		config.Timeout = timeout
	}

	return config, nil
}
