// Package helpdb loads the documented-command database used for command
// listing and interactive help. Two on-disk formats are supported: a
// SQLite database with a commands(name, brief) table, and the plain-text
// aide format of `# name` headers followed by help lines. Loading runs
// once per process; every consumer afterwards reads the same snapshot.
package helpdb
