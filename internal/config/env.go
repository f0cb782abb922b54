package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultEnvFile = ".env"
	envFileVar     = "HONYAKU_ENV_FILE"
)

// LoadEnv loads a .env file into the process environment. Variables already
// set win over the file. HONYAKU_ENV_FILE takes precedence over path. A
// missing default file is not an error; a missing explicit one is.
func LoadEnv(path string) (string, error) {
	requested := strings.TrimSpace(os.Getenv(envFileVar))
	if requested == "" {
		requested = strings.TrimSpace(path)
	}
	explicit := requested != "" && requested != DefaultEnvFile
	if requested == "" {
		requested = DefaultEnvFile
	}

	if err := godotenv.Load(requested); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load env file %s: %w", requested, err)
	}
	return requested, nil
}
