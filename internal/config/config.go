package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

const (
	defaultEnv             = "development"
	defaultHTTPAddr        = ":8000"
	defaultDBPath          = "data/personal_cloud.db"
	defaultJWTAlgorithm    = "HS256"
	defaultTokenLifetime   = 60
	defaultDriveIndex      = 1
	defaultUploadMaxSize   = "2GiB"
	defaultMetricsAddr     = "off"
	defaultFirstUserName   = "Admin"
	environmentDevelopment = "development"
)

var developmentEnvironments = map[string]struct{}{
	environmentDevelopment: {},
	"dev":                  {},
	"local":                {},
	"test":                 {},
}

type Config struct {
	Env              string
	HTTPAddr         string
	DBPath           string
	GoogleClientID   string
	JWTSecretKey     string
	JWTAlgorithm     string
	TokenLifetime    time.Duration
	AllowedEmailsRaw string
	FirstUserEmail   string
	FirstUserName    string
	DriveMountBase   string
	DriveIndex       int
	UploadMaxBytes   int
	CORSAllowOrigins []string
	MetricsAddr      string
}

type LoadOptions struct {
	// RequireAuth is false for commands that never issue or verify sessions.
	RequireAuth bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireAuth: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		Env:              strings.ToLower(strings.TrimSpace(getenvDefault("ENV", defaultEnv))),
		HTTPAddr:         getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		DBPath:           getenvDefault("DB_PATH", defaultDBPath),
		GoogleClientID:   strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		JWTSecretKey:     os.Getenv("JWT_SECRET_KEY"),
		JWTAlgorithm:     strings.ToUpper(strings.TrimSpace(getenvDefault("JWT_ALGORITHM", defaultJWTAlgorithm))),
		AllowedEmailsRaw: os.Getenv("ALLOWED_EMAILS"),
		FirstUserEmail:   strings.ToLower(strings.TrimSpace(os.Getenv("FIRST_USER_EMAIL"))),
		FirstUserName:    strings.TrimSpace(getenvDefault("FIRST_USER_NAME", defaultFirstUserName)),
		DriveMountBase:   strings.TrimSpace(os.Getenv("DRIVE_MOUNT_BASE")),
		CORSAllowOrigins: splitList(os.Getenv("CORS_ALLOW_ORIGINS")),
		MetricsAddr:      getenvDefault("METRICS_ADDR", defaultMetricsAddr),
	}

	lifetimeMinutes, err := getenvIntStrict("ACCESS_TOKEN_EXPIRE_MINUTES", defaultTokenLifetime, 1)
	if err != nil {
		return cfg, err
	}
	cfg.TokenLifetime = time.Duration(lifetimeMinutes) * time.Minute

	if cfg.DriveIndex, err = getenvIntStrict("DRIVE_INDEX", defaultDriveIndex, 0); err != nil {
		return cfg, err
	}

	if cfg.UploadMaxBytes, err = parseByteSize("UPLOAD_MAX_SIZE", getenvDefault("UPLOAD_MAX_SIZE", defaultUploadMaxSize)); err != nil {
		return cfg, err
	}

	if !opts.RequireAuth {
		return cfg, nil
	}

	if cfg.GoogleClientID == "" {
		return cfg, errors.New("GOOGLE_CLIENT_ID is required")
	}
	if strings.TrimSpace(cfg.JWTSecretKey) == "" {
		return cfg, errors.New("JWT_SECRET_KEY is required")
	}
	switch cfg.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return cfg, fmt.Errorf("JWT_ALGORITHM must be one of: HS256, HS384, HS512 (got %q)", cfg.JWTAlgorithm)
	}
	if _, err := ParseAllowedEmails(cfg.AllowedEmailsRaw); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// CookieSecure reports whether session cookies must carry the Secure flag.
func (cfg Config) CookieSecure() bool {
	_, isDevelopment := developmentEnvironments[strings.ToLower(strings.TrimSpace(cfg.Env))]
	return !isDevelopment
}

// ParseAllowedEmails decodes the ALLOWED_EMAILS JSON list into lower-cased addresses.
func ParseAllowedEmails(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("ALLOWED_EMAILS environment variable is not set")
	}

	var entries []any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("ALLOWED_EMAILS must be a JSON list: %w", err)
	}

	emails := make([]string, 0, len(entries))
	for _, entry := range entries {
		// Non-string members are ignored.
		value, ok := entry.(string)
		if !ok {
			continue
		}
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		emails = append(emails, normalized)
	}
	return emails, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntStrict(key string, def int, min int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n < min {
		return 0, fmt.Errorf("%s must be at least %d", key, min)
	}
	return n, nil
}

// parseByteSize accepts sizes such as "512MB" or "2 GiB".
func parseByteSize(key, raw string) (int, error) {
	size, err := humanize.ParseBytes(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a byte size such as 512MB or 2GiB: %w", key, err)
	}
	if size == 0 || size > math.MaxInt {
		return 0, fmt.Errorf("%s must be a positive size that fits in an int", key)
	}
	return int(size), nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
