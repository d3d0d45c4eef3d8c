package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testLogger struct{}

func (testLogger) Debugf(string, ...any) {}
func (testLogger) Logf(string, ...any)   {}
func (testLogger) Errorf(string, ...any) {}

func TestEnvLoader_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(dir+"/.env", []byte("PUBSUB_PROJECT_ID=proj\n"), 0o600)
	assert.NoError(t, err)

	conf := NewEnvFile(dir, testLogger{})

	assert.Equal(t, "proj", conf.Get("PUBSUB_PROJECT_ID"))

	t.Cleanup(func() { os.Unsetenv("PUBSUB_PROJECT_ID") })
}

func TestEnvLoader_LocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(dir+"/.env", []byte("PUBSUB_EMULATOR_HOST=base:8085\n"), 0o600)
	assert.NoError(t, err)
	err = os.WriteFile(dir+"/.local.env", []byte("PUBSUB_EMULATOR_HOST=local:8085\n"), 0o600)
	assert.NoError(t, err)

	conf := NewEnvFile(dir, testLogger{})

	assert.Equal(t, "local:8085", conf.Get("PUBSUB_EMULATOR_HOST"))

	t.Cleanup(func() { os.Unsetenv("PUBSUB_EMULATOR_HOST") })
}

func TestEnvLoader_SystemEnvWins(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("PUBSUB_TEST_KEY", "system")

	err := os.WriteFile(dir+"/.env", []byte("PUBSUB_TEST_KEY=file\n"), 0o600)
	assert.NoError(t, err)

	conf := NewEnvFile(dir, testLogger{})

	assert.Equal(t, "system", conf.Get("PUBSUB_TEST_KEY"))
}

func TestEnvLoader_GetOrDefault(t *testing.T) {
	conf := NewEnvFile(t.TempDir(), testLogger{})

	assert.Equal(t, "fallback", conf.GetOrDefault("PUBSUB_MISSING_KEY", "fallback"))
}

func TestMockConfig(t *testing.T) {
	conf := NewMockConfig(map[string]string{"A": "1"})

	assert.Equal(t, "1", conf.Get("A"))
	assert.Equal(t, "1", conf.GetOrDefault("A", "2"))
	assert.Equal(t, "2", conf.GetOrDefault("B", "2"))
}
