package configpkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "production", c.Environement)
	require.Equal(t, "postgres", c.DBDriver)
	require.Equal(t, "account_states", c.KafkaTopic)
	require.Equal(t, int64(32<<20), c.MaxUploadBytes)
	require.Empty(t, c.DBSource)
	require.Nil(t, c.Brokers())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "GO_ENV=development\nKAFKA_BROKERS=a:9092, b:9092 ,\nDB_SOURCE=postgres://file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	t.Setenv("DB_SOURCE", "postgres://env")

	c, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, "development", c.Environement)
	require.Equal(t, "postgres://env", c.DBSource)
	require.Equal(t, []string{"a:9092", "b:9092"}, c.Brokers())
}
