package pkg

import "os"

// Getenv returns value of environment variable by key, in case there is no such key
// it returns defaultValue. Note that empty value set explicitly is returned as is
func Getenv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}
