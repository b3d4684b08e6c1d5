package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"finitefield.org/hanko-seo/internal/domain"
)

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 60 * time.Second
	defaultLocale        = "en"
	defaultContentDir    = "content"
	defaultSignedURLTTL  = 15 * time.Minute
	defaultTxTimeout     = 15 * time.Second
	defaultTxAttempts    = 5
	storageBackendMemory = "memory"
	storageBackendFire   = "firestore"
)

// Config aggregates runtime configuration for the SEO service.
type Config struct {
	Server      ServerConfig
	App         AppConfig
	Locales     LocaleConfig
	Content     ContentConfig
	Storage     StorageConfig
	Firestore   FirestoreConfig
	Defaults    DefaultsConfig
	Limits      LimitsConfig
	SchemaTypes []domain.SchemaType
}

// ServerConfig controls HTTP server behaviour.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// AppConfig names the site when no settings record overrides it.
type AppConfig struct {
	Name string
	URL  string
}

// LocaleConfig lists the locales pages are published in.
type LocaleConfig struct {
	Default   string
	Available []string
}

// ContentConfig points at the front-matter content tree.
type ContentConfig struct {
	Dir          string
	SettingsFile string
}

// StorageConfig selects the record store and how image paths become URLs.
type StorageConfig struct {
	Backend       string
	PublicBaseURL string
	Bucket        string
	SignedURLKey  string
	SignedURLTTL  time.Duration
}

// FirestoreConfig stores database parameters.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
	// TxTimeout and TxAttempts bound repository transactions.
	TxTimeout  time.Duration
	TxAttempts int
}

// DefaultsConfig holds the values used when a record leaves a field blank.
type DefaultsConfig struct {
	Robots      domain.RobotsDirective
	OgType      domain.OgType
	TwitterCard domain.TwitterCardType
}

// LengthLimit is the recommended band for a text field.
type LengthLimit struct {
	OptimalMin int
	OptimalMax int
	Max        int
}

// LimitsConfig holds editor length guidance.
type LimitsConfig struct {
	Title       LengthLimit
	Description LengthLimit
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over the environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles configuration from defaults, .env overrides and environment variables.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if value, ok := options.envMap[key]; ok {
			return value, true
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		value, ok := dotEnvValues[key]
		return value, ok
	}

	var invalid []string

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "SEO_SERVER_PORT", defaultPort),
			ReadTimeout:  durationWithDefault(lookup, "SEO_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SEO_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SEO_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		App: AppConfig{
			Name: stringWithDefault(lookup, "SEO_APP_NAME", ""),
			URL:  strings.TrimRight(stringWithDefault(lookup, "SEO_APP_URL", ""), "/"),
		},
		Locales: LocaleConfig{
			Default:   stringWithDefault(lookup, "SEO_LOCALE_DEFAULT", defaultLocale),
			Available: csvWithDefault(lookup, "SEO_LOCALES"),
		},
		Content: ContentConfig{
			Dir:          stringWithDefault(lookup, "SEO_CONTENT_DIR", defaultContentDir),
			SettingsFile: stringWithDefault(lookup, "SEO_SETTINGS_FILE", ""),
		},
		Storage: StorageConfig{
			Backend:       strings.ToLower(stringWithDefault(lookup, "SEO_STORAGE_BACKEND", storageBackendMemory)),
			PublicBaseURL: stringWithDefault(lookup, "SEO_STORAGE_PUBLIC_URL", ""),
			Bucket:        stringWithDefault(lookup, "SEO_STORAGE_BUCKET", ""),
			SignedURLKey:  stringWithDefault(lookup, "SEO_STORAGE_SIGNED_URL_KEY", ""),
			SignedURLTTL:  durationWithDefault(lookup, "SEO_STORAGE_SIGNED_URL_TTL", defaultSignedURLTTL),
		},
		Firestore: FirestoreConfig{
			ProjectID:    stringWithDefault(lookup, "SEO_FIRESTORE_PROJECT_ID", ""),
			EmulatorHost: stringWithDefault(lookup, "FIRESTORE_EMULATOR_HOST", ""),
			TxTimeout:    durationWithDefault(lookup, "SEO_FIRESTORE_TX_TIMEOUT", defaultTxTimeout),
			TxAttempts:   intWithDefault(lookup, "SEO_FIRESTORE_TX_ATTEMPTS", defaultTxAttempts),
		},
		Limits: LimitsConfig{
			Title: LengthLimit{
				OptimalMin: intWithDefault(lookup, "SEO_TITLE_OPTIMAL_MIN", 50),
				OptimalMax: intWithDefault(lookup, "SEO_TITLE_OPTIMAL_MAX", 65),
				Max:        intWithDefault(lookup, "SEO_TITLE_MAX", 70),
			},
			Description: LengthLimit{
				OptimalMin: intWithDefault(lookup, "SEO_DESCRIPTION_OPTIMAL_MIN", 150),
				OptimalMax: intWithDefault(lookup, "SEO_DESCRIPTION_OPTIMAL_MAX", 160),
				Max:        intWithDefault(lookup, "SEO_DESCRIPTION_MAX", 160),
			},
		},
	}

	if robots, ok := domain.ParseRobotsDirective(stringWithDefault(lookup, "SEO_DEFAULT_ROBOTS", string(domain.DefaultRobotsDirective))); ok {
		cfg.Defaults.Robots = robots
	} else {
		invalid = append(invalid, "Defaults.Robots")
	}
	if ogType, ok := domain.ParseOgType(stringWithDefault(lookup, "SEO_DEFAULT_OG_TYPE", string(domain.DefaultOgType))); ok {
		cfg.Defaults.OgType = ogType
	} else {
		invalid = append(invalid, "Defaults.OgType")
	}
	if card, ok := domain.ParseTwitterCardType(stringWithDefault(lookup, "SEO_DEFAULT_TWITTER_CARD", string(domain.DefaultTwitterCardType))); ok {
		cfg.Defaults.TwitterCard = card
	} else {
		invalid = append(invalid, "Defaults.TwitterCard")
	}

	for _, raw := range csvWithDefault(lookup, "SEO_SCHEMA_TYPES") {
		schemaType, ok := domain.ParseSchemaType(raw)
		if !ok {
			invalid = append(invalid, "SchemaTypes["+raw+"]")
			continue
		}
		cfg.SchemaTypes = append(cfg.SchemaTypes, schemaType)
	}

	if cfg.Firestore.ProjectID == "" {
		cfg.Firestore.ProjectID = stringWithDefault(lookup, "GOOGLE_CLOUD_PROJECT", "")
	}
	if len(cfg.Locales.Available) == 0 {
		cfg.Locales.Available = []string{cfg.Locales.Default}
	}

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	fields := append([]string(nil), invalid...)

	defaultTag, err := language.Parse(cfg.Locales.Default)
	if err != nil {
		fields = append(fields, "Locales.Default")
	} else {
		found := false
		for _, raw := range cfg.Locales.Available {
			tag, err := language.Parse(raw)
			if err != nil {
				fields = append(fields, "Locales.Available["+raw+"]")
				continue
			}
			if tag == defaultTag {
				found = true
			}
		}
		if !found {
			fields = append(fields, "Locales.Available")
		}
	}

	switch cfg.Storage.Backend {
	case storageBackendMemory:
	case storageBackendFire:
		if strings.TrimSpace(cfg.Firestore.ProjectID) == "" {
			fields = append(fields, "Firestore.ProjectID")
		}
	default:
		fields = append(fields, "Storage.Backend")
	}

	if cfg.Storage.SignedURLKey != "" && cfg.Storage.Bucket == "" {
		fields = append(fields, "Storage.Bucket")
	}
	if cfg.Server.Port == "" {
		fields = append(fields, "Server.Port")
	}

	for name, limit := range map[string]LengthLimit{"Limits.Title": cfg.Limits.Title, "Limits.Description": cfg.Limits.Description} {
		if limit.OptimalMin <= 0 || limit.OptimalMin > limit.OptimalMax || limit.OptimalMax > limit.Max {
			fields = append(fields, name)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

// UsesFirestore reports whether records are read from Firestore.
func (c Config) UsesFirestore() bool {
	return c.Storage.Backend == storageBackendFire
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
