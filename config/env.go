package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultFileName         = "/.env"
	defaultOverrideFileName = "/.local.env"
)

// EnvLoader is a Config backed by the process environment, seeded from
// <folder>/.env and, when present, overridden by <folder>/.local.env. Values
// already set in the system environment always win over file values.
type EnvLoader struct {
	logger logger
}

type logger interface {
	Debugf(format string, a ...any)
	Logf(format string, a ...any)
	Errorf(format string, a ...any)
}

// NewEnvFile loads env files from configFolder and returns the resulting
// Config.
func NewEnvFile(configFolder string, logger logger) Config {
	conf := &EnvLoader{logger: logger}
	conf.read(configFolder)

	return conf
}

func (e *EnvLoader) read(folder string) {
	initialEnv := make(map[string]bool)

	for _, envVar := range os.Environ() {
		key, _, _ := strings.Cut(envVar, "=")
		initialEnv[key] = true
	}

	envMap := make(map[string]string)

	e.readFile(folder+defaultFileName, envMap)
	e.readFile(folder+defaultOverrideFileName, envMap)

	for key, value := range envMap {
		if !initialEnv[key] {
			os.Setenv(key, value)
		}
	}
}

func (e *EnvLoader) readFile(file string, envMap map[string]string) {
	content, err := godotenv.Read(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Errorf("could not load config from file: %v, err: %v", file, err)
		}

		return
	}

	for k, v := range content {
		envMap[k] = v
	}

	e.logger.Logf("loaded config from file: %v", file)
}

func (*EnvLoader) Get(key string) string {
	return os.Getenv(key)
}

func (*EnvLoader) GetOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultValue
}
