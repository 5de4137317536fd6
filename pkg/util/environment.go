package util

import (
	"fmt"
	"os"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

func GetEnvironmentVariable(name string, defaultValue string) string {
	if value := GetEnvironmentVariables()[name]; value != "" {
		return value
	}

	return defaultValue
}

// GetEnvironmentDuration reads an ISO-8601 duration such as PT90M
func GetEnvironmentDuration(name string, defaultValue string) (time.Duration, error) {
	value := GetEnvironmentVariable(name, defaultValue)

	isoDuration, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	now := time.Now()
	return isoDuration.Shift(now).Sub(now), nil
}
