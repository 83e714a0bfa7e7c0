package database

import (
	"os"
	"path/filepath"
	"testing"

	"chatboard/config"

	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_Order(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	for _, name := range []string{"002_more.up.sql", "001_init.up.sql", "001_init.down.sql", "002_more.down.sql", "notes.txt"} {
		req.NoError(os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	req.NoError(os.Mkdir(filepath.Join(dir, "003_dir.up.sql"), 0o700))

	up, err := migrationFiles(dir, true)
	req.NoError(err)
	req.Equal([]string{
		filepath.Join(dir, "001_init.up.sql"),
		filepath.Join(dir, "002_more.up.sql"),
	}, up)

	down, err := migrationFiles(dir, false)
	req.NoError(err)
	req.Equal([]string{
		filepath.Join(dir, "002_more.down.sql"),
		filepath.Join(dir, "001_init.down.sql"),
	}, down)
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "missing"), true)
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	dsn := DSN(&config.Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "chat", DBPort: "5433"})
	require.Equal(t, "host=db user=u password=p dbname=chat port=5433 sslmode=disable TimeZone=UTC", dsn)
}
