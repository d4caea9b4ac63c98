package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv(t *testing.T) {
	t.Run("missing file is skipped", func(t *testing.T) {
		err := LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
		assert.NoError(t, err)
	})

	t.Run("loads variables from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		err := os.WriteFile(path, []byte("SKILLET_ENV_TEST_VALUE=from-dotenv\n"), 0644)
		assert.NoError(t, err)

		t.Setenv("SKILLET_ENV_TEST_VALUE", "")
		os.Unsetenv("SKILLET_ENV_TEST_VALUE")

		err = LoadEnv(path)
		assert.NoError(t, err)
		assert.Equal(t, "from-dotenv", os.Getenv("SKILLET_ENV_TEST_VALUE"))
	})

	t.Run("existing environment wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		err := os.WriteFile(path, []byte("SKILLET_ENV_TEST_KEEP=from-dotenv\n"), 0644)
		assert.NoError(t, err)

		t.Setenv("SKILLET_ENV_TEST_KEEP", "from-process")
		err = LoadEnv(path)
		assert.NoError(t, err)
		assert.Equal(t, "from-process", os.Getenv("SKILLET_ENV_TEST_KEEP"))
	})
}
