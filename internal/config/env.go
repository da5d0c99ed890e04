package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// EnvVar documents one environment variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// Var returns an environment variable stripped of whitespace and quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Seed returns TABAE_SEED and whether it is set to a valid integer.
func Seed() (int64, bool) {
	s := Var("TABAE_SEED")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		slog.Warn("invalid environment variable, ignoring", "key", "TABAE_SEED", "value", s)
		return 0, false
	}
	return n, true
}

// Debug reports whether TABAE_DEBUG enables debug logging.
func Debug() bool {
	s := Var("TABAE_DEBUG")
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return true
	}
	return b
}

// Config returns the tracked environment variables with their values.
func Config() []EnvVar {
	seed, ok := Seed()
	var seedValue any
	if ok {
		seedValue = seed
	}
	return []EnvVar{
		{"TABAE_SEED", seedValue, "Seed for weight init, sampling and shuffling (default: time based)"},
		{"TABAE_DEBUG", Debug(), "Show debug logging"},
	}
}

// AsMap renders Config as name → value strings.
func AsMap() map[string]string {
	m := make(map[string]string)
	for _, e := range Config() {
		m[e.Name] = fmt.Sprint(e.Value)
	}
	return m
}
