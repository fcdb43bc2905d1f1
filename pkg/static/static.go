// Package static embeds the test fixtures seeded into test environments.
package static

import (
	"embed"
	"io/fs"
	"path"

	"github.com/hankinsohl/fgdb/pkg/types"
)

//go:embed all:fixtures
var fixturesFS embed.FS

// Fixtures returns the per-table fixture files of variant, named <table>.json.
func Fixtures(variant types.GameVariant) (fs.FS, error) {
	return fs.Sub(fixturesFS, path.Join("fixtures", variant.Code()))
}
