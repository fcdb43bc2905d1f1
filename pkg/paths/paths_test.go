package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/types"
)

func TestLookup(t *testing.T) {
	p := New("/data", types.Poe1, env.Test2)
	assert.Equal(t, filepath.FromSlash("/data/assets/poe1/json/test"), p.Lookup(AssetsJSONTest))
	assert.Equal(t, filepath.FromSlash("/data/cache/poe1/json"), p.Lookup(CacheJSON))
	assert.Equal(t, filepath.FromSlash("/data/cache/poe1/timestamp"), p.Lookup(CacheTimestamp))
	assert.Equal(t, filepath.FromSlash("/data/cache/poe1/zip"), p.Lookup(CacheZip))
	assert.Equal(t, filepath.FromSlash("/data/env/poe1/test2/db"), p.Lookup(EnvDB))
	assert.Equal(t, filepath.FromSlash("/data/env/poe1/test2/out"), p.Lookup(EnvOut))
	assert.Equal(t, filepath.FromSlash("/data/env/poe1/test2/db/fgdb.db"), p.DBFile())
}

func TestLookupEveryCell(t *testing.T) {
	for _, variant := range []types.GameVariant{types.Poe1, types.Poe2} {
		for _, e := range env.All() {
			p := New("", variant, e)
			for d := AssetsJSONTest; d <= EnvOut; d++ {
				rel := p.Relative(d)
				assert.NotEmpty(t, rel, "%s/%s/%s", variant, e, d)
				assert.Contains(t, rel, variant.Code())
			}
			assert.Contains(t, p.Relative(EnvDB), e.RelativePath())
		}
	}
}

func TestLookupInvalid(t *testing.T) {
	assert.Empty(t, New("", types.Poe1, env.Env(9)).Lookup(EnvDB))
	assert.Empty(t, New("", types.Poe1, env.Test1).Lookup(Dir(99)))
	assert.Equal(t, "EnvOut", EnvOut.String())
	assert.Equal(t, "Dir(99)", Dir(99).String())
}

func TestCreateAndRemoveDirs(t *testing.T) {
	root := t.TempDir()
	p := New(root, types.Poe2, env.Test4)

	require.NoError(t, p.CreateCacheDirs())
	require.NoError(t, p.CreateEnvDirs())
	for _, d := range append(CacheDirs, EnvDirs...) {
		info, err := os.Stat(p.Lookup(d))
		require.NoError(t, err, d.String())
		assert.True(t, info.IsDir())
	}

	require.NoError(t, os.WriteFile(filepath.Join(p.Lookup(EnvOut), "x.json"), []byte("[]"), 0o644))
	require.NoError(t, p.RemoveEnvOutDirs())
	_, err := os.Stat(p.Lookup(EnvOut))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(p.Lookup(EnvDB))
	assert.NoError(t, err)

	require.NoError(t, p.RemoveEnvOutDirs(), "removing a missing directory is not an error")
	require.NoError(t, p.RemoveCacheDirs())
	_, err = os.Stat(p.Lookup(CacheJSON))
	assert.True(t, os.IsNotExist(err))
}
