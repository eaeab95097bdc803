package helpdb

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const textFixture = `# factor
Factors a polynomial over the rationals.

# gcd
Greatest common divisor.
Works on integers and polynomials.

# lcm
Least common multiple.
`

func writeTextFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aide.txt")
	require.NoError(t, os.WriteFile(path, []byte(textFixture), 0o644))
	return path
}

func writeSQLiteFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "help.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE commands (name TEXT PRIMARY KEY, brief TEXT)`)
	require.NoError(t, err)
	for _, row := range [][2]string{
		{"diff", "Derivative with respect to a variable."},
		{"expand", "Distributes products over sums."},
	} {
		_, err = db.Exec(`INSERT INTO commands (name, brief) VALUES (?, ?)`, row[0], row[1])
		require.NoError(t, err)
	}
	return path
}

func TestLoadText(t *testing.T) {
	loaded, err := loadText(writeTextFixture(t))
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "factor", loaded[0].Name)
	assert.Equal(t, "Factors a polynomial over the rationals.", loaded[0].Brief)
	assert.Equal(t, "Greatest common divisor. Works on integers and polynomials.", loaded[1].Brief)
}

func TestLoadTextMissing(t *testing.T) {
	_, err := loadText(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestLoadSQLite(t *testing.T) {
	loaded, err := loadSQLite(writeSQLiteFixture(t))
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "diff", loaded[0].Name)
	assert.Equal(t, "expand", loaded[1].Name)
}

func TestLoadSQLiteMissing(t *testing.T) {
	_, err := loadSQLite(filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
}

func TestInitHelpOnce(t *testing.T) {
	require.NoError(t, InitHelp(writeTextFixture(t)))
	assert.Equal(t, 3, Count())
	assert.Equal(t, []string{"factor", "gcd", "lcm"}, Commands())

	e, ok := Lookup("gcd")
	require.True(t, ok)
	assert.Equal(t, "Greatest common divisor. Works on integers and polynomials.", e.Brief)

	_, ok = Lookup("unknown")
	assert.False(t, ok)

	// a second init is a no-op, whatever path it names
	require.NoError(t, InitHelp(filepath.Join(t.TempDir(), "other.txt")))
	assert.Equal(t, 3, Count())
}
