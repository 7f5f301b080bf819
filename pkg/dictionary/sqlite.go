package dictionary

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/bastiangx/symserve/pkg/corpus"
	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS packages (
	name TEXT PRIMARY KEY,
	path TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS entities (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	package TEXT NOT NULL REFERENCES packages(name),
	name    TEXT NOT NULL,
	kind    TEXT NOT NULL,
	builtin INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entities_package ON entities(package);
`

func loadSQLite(path string) (*corpus.Data, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database %s: %w", path, err)
	}
	defer db.Close()

	data := &corpus.Data{Packages: make(map[string]corpus.Package)}

	rows, err := db.Query(`SELECT name, path FROM packages`)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	for rows.Next() {
		var pkg corpus.Package
		if err := rows.Scan(&pkg.Name, &pkg.Path); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		data.Packages[pkg.Name] = pkg
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packages: %w", err)
	}

	rows, err = db.Query(`SELECT package, name, kind, builtin FROM entities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pkgName string
		var e corpus.RawEntity
		if err := rows.Scan(&pkgName, &e.Name, &e.Kind, &e.Builtin); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		pkg, ok := data.Packages[pkgName]
		if !ok {
			log.Warnf("Entity %s.%s references an unknown package, skipping", pkgName, e.Name)
			continue
		}
		pkg.Entities = append(pkg.Entities, e)
		data.Packages[pkgName] = pkg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entities: %w", err)
	}
	return data, nil
}

// saveSQLite replaces any file at path with a fresh database.
func saveSQLite(data *corpus.Data, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to create corpus database %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	pkgStmt, err := tx.Prepare(`INSERT INTO packages (name, path) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare package insert: %w", err)
	}
	defer pkgStmt.Close()

	entStmt, err := tx.Prepare(`INSERT INTO entities (package, name, kind, builtin) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare entity insert: %w", err)
	}
	defer entStmt.Close()

	for _, name := range sortedNames(data) {
		pkg := data.Packages[name]
		if _, err := pkgStmt.Exec(name, pkg.Path); err != nil {
			return fmt.Errorf("failed to insert package %s: %w", name, err)
		}
		for _, e := range pkg.Entities {
			if _, err := entStmt.Exec(name, e.Name, e.Kind, e.Builtin); err != nil {
				return fmt.Errorf("failed to insert entity %s.%s: %w", name, e.Name, err)
			}
		}
	}
	return tx.Commit()
}
