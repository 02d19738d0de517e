package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration
	LogLevel        string

	// Sessions
	SessionCookie string
	SessionTTL    time.Duration
	MaxSessions   int
	SecureCookies bool

	// Intake
	RateLimitPerMinute int
	// SurfaceRejections shows a notice for non-positive amounts instead of
	// silently ignoring them.
	SurfaceRejections bool

	// Cosmetic chrome
	HideChrome bool
	FooterText string
	FooterLink string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8081"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		SessionCookie: getEnv("SESSION_COOKIE", "budget_session"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 2*time.Hour),
		MaxSessions:   getEnvInt("MAX_SESSIONS", 1000),
		SecureCookies: getEnvBool("SECURE_COOKIES", false),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		SurfaceRejections:  getEnvBool("SURFACE_REJECTIONS", false),

		HideChrome: getEnvBool("CHROME_HIDE", false),
		FooterText: getEnv("FOOTER_TEXT", "Made with ❤️"),
		FooterLink: getEnv("FOOTER_LINK", ""),
	}
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	level := strings.ToLower(c.LogLevel)
	isValidLevel := false
	for _, l := range validLogLevels {
		if level == l {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}

	if strings.TrimSpace(c.SessionCookie) == "" {
		errors = append(errors, "session cookie name cannot be empty")
	} else if strings.ContainsAny(c.SessionCookie, " ;,=\t") {
		errors = append(errors, fmt.Sprintf("invalid session cookie name '%s'", c.SessionCookie))
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	} else if c.SessionTTL > 7*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at most 7 days", c.SessionTTL))
	}

	if c.MaxSessions < 1 {
		errors = append(errors, fmt.Sprintf("invalid max sessions %d: must be at least 1", c.MaxSessions))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	if c.FooterLink != "" {
		if u, err := url.Parse(c.FooterLink); err != nil {
			errors = append(errors, fmt.Sprintf("invalid footer link '%s': %v", c.FooterLink, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid footer link scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
