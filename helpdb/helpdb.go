package helpdb

import (
	"bufio"
	"database/sql"
	"os"
	"sort"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	errs "github.com/casworks/giacbridge/errors"
)

// Entry is one documented command.
type Entry struct {
	Name  string
	Brief string
}

var (
	loadOnce sync.Once
	loadErr  error

	mu      sync.RWMutex
	entries map[string]Entry
	names   []string
)

// InitHelp loads the command database once per process. Files ending in
// .db or .sqlite load through SQLite (table commands(name, brief));
// anything else parses as the plain-text aide format: a `# name` line
// opens an entry and the following lines up to the next marker are its
// help text. Calling InitHelp again returns the first result, whatever
// path is passed.
func InitHelp(path string) error {
	loadOnce.Do(func() {
		var loaded []Entry
		var err error
		if strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite") {
			loaded, err = loadSQLite(path)
		} else {
			loaded, err = loadText(path)
		}
		if err != nil {
			loadErr = err
			return
		}
		install(loaded)
	})
	return loadErr
}

func install(loaded []Entry) {
	mu.Lock()
	defer mu.Unlock()
	entries = make(map[string]Entry, len(loaded))
	names = make([]string, 0, len(loaded))
	for _, e := range loaded {
		if _, dup := entries[e.Name]; dup {
			continue
		}
		entries[e.Name] = e
		names = append(names, e.Name)
	}
	sort.Strings(names)
}

func loadSQLite(path string) ([]Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errs.Load("help database not readable", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errs.Load("opening help database", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name, brief FROM commands ORDER BY name`)
	if err != nil {
		return nil, errs.Load("querying help database", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Brief); err != nil {
			return nil, errs.Load("reading help database row", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Load("reading help database", err)
	}
	return out, nil
}

func loadText(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Load("help file not readable", err)
	}
	defer f.Close()

	var out []Entry
	var cur *Entry
	var brief []string

	flush := func() {
		if cur != nil {
			cur.Brief = strings.TrimSpace(strings.Join(brief, " "))
			out = append(out, *cur)
		}
		cur = nil
		brief = nil
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if name, ok := strings.CutPrefix(line, "# "); ok {
			flush()
			cur = &Entry{Name: strings.TrimSpace(name)}
			continue
		}
		if cur != nil && strings.TrimSpace(line) != "" {
			brief = append(brief, strings.TrimSpace(line))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Load("reading help file", err)
	}
	flush()
	return out, nil
}

// Commands returns the sorted documented command names. Empty until
// InitHelp succeeds.
func Commands() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Count returns the number of documented commands.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(names)
}

// Lookup returns the entry for name.
func Lookup(name string) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[name]
	return e, ok
}
