package db

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SchemaSQL concatenates the bundled migration files in order, for
// operators provisioning the external backend by hand.
func SchemaSQL() (string, error) {
	entries, err := migrationFS.ReadDir("migrations")

	if err != nil {
		return "", fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	sort.Strings(names)

	var schema string

	for _, name := range names {
		data, err := migrationFS.ReadFile("migrations/" + name)

		if err != nil {
			return "", fmt.Errorf("read migration %s: %w", name, err)
		}

		schema += fmt.Sprintf("-- Migration: %s\n%s\n\n", name, data)
	}

	return schema, nil
}
