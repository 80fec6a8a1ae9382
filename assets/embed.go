// assets/embed.go
//
// Static files compiled into the binary:
//   - catalog.yaml:    default conditions and medications.
//   - migrations/*.sql: schema for finished-round results.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed catalog.yaml migrations/*.sql
var FS embed.FS

// CatalogYAML returns the raw bytes of the default catalog.
func CatalogYAML() ([]byte, error) {
	return FS.ReadFile("catalog.yaml")
}

// Migrations returns the migrations directory as its own filesystem root.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "migrations")
}
