package static

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hankinsohl/fgdb/pkg/types"
)

func TestFixturesPerVariant(t *testing.T) {
	for _, variant := range types.GameVariants() {
		fsys, err := Fixtures(variant)
		require.NoError(t, err)
		matches, err := fs.Glob(fsys, "*.json")
		require.NoError(t, err)
		assert.Len(t, matches, 11, variant.String())
	}
}
