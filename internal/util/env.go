package util

import (
	"os"
	"strconv"
	"strings"
)

// GetEnvDefault returns the value of the environment variable with the given key, or the fallback value if the variable is not set or empty.
func GetEnvDefault(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

// GetEnvIntDefault returns the positive integer value of the environment variable, or the fallback if the variable
// is unset, unparseable or not positive.
func GetEnvIntDefault(key string, fallback int) int {
	parsed, err := strconv.Atoi(GetEnvDefault(key, ""))
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
