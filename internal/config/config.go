package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working directory
// or its parent. Variables already set in the environment win. It returns the
// file loaded, or "" when none was found.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return envFile, err
		}
		return envFile, nil
	}
	return "", nil
}
