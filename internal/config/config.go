package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	SDKConfig
	CallbackConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	SDK
	Callback
}

func New() Config {
	return mainConfig{}
}

// LoadDotEnv loads variables from the given files, ".env" by default, without
// overriding variables already set. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, f := range filenames {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("godotenv.Load %s: %w", f, err)
		}
	}
	return nil
}
