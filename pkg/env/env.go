package env

import "os"

// Get reads an environment variable, returning fallback when it is unset or
// empty. Empty is treated as unset since container platforms often export
// blank values for optional settings.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
