// Package paths resolves {game variant, environment, directory kind} to filesystem paths.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hankinsohl/fgdb/pkg/constants"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/types"
)

// Dir names a directory kind.
type Dir int

const (
	AssetsJSONTest Dir = iota
	CacheJSON
	CacheTimestamp
	CacheZip
	EnvDB
	EnvOut
)

const dirCount = int(EnvOut) + 1

var dirNames = [dirCount]string{"AssetsJsonTest", "CacheJson", "CacheTimestamp", "CacheZip", "EnvDb", "EnvOut"}

func (d Dir) String() string {
	if d < 0 || int(d) >= dirCount {
		return fmt.Sprintf("Dir(%d)", int(d))
	}
	return dirNames[d]
}

// Dir groups.
var (
	CacheDirs   = []Dir{CacheJSON, CacheTimestamp, CacheZip}
	EnvDirs     = []Dir{EnvDB, EnvOut}
	EnvOutDirs  = []Dir{EnvOut}
	variantDirs = map[types.GameVariant]string{
		types.Poe1: "poe1",
		types.Poe2: "poe2",
	}
)

// registry is the relative lookup table indexed [variant][env][dir].
var registry = buildRegistry()

func buildRegistry() map[types.GameVariant][env.Count][dirCount]string {
	out := make(map[types.GameVariant][env.Count][dirCount]string, len(variantDirs))
	for variant, v := range variantDirs {
		var table [env.Count][dirCount]string
		for _, e := range env.All() {
			rel := e.RelativePath()
			table[e] = [dirCount]string{
				AssetsJSONTest: filepath.Join(constants.AssetsDir, v, constants.AssetsJSONTestDir),
				CacheJSON:      filepath.Join(constants.CacheDir, v, constants.CacheJSONDir),
				CacheTimestamp: filepath.Join(constants.CacheDir, v, constants.CacheTimestampDir),
				CacheZip:       filepath.Join(constants.CacheDir, v, constants.CacheZipDir),
				EnvDB:          filepath.Join(constants.EnvDir, v, rel, constants.EnvDBDir),
				EnvOut:         filepath.Join(constants.EnvDir, v, rel, constants.EnvOutDir),
			}
		}
		out[variant] = table
	}
	return out
}

// Paths resolves directories for one variant and environment under root.
type Paths struct {
	root    string
	variant types.GameVariant
	env     env.Env
}

// New returns a resolver. An empty root resolves relative to the working directory.
func New(root string, variant types.GameVariant, e env.Env) Paths {
	return Paths{root: root, variant: variant, env: e}
}

// Env returns the environment this resolver is bound to.
func (p Paths) Env() env.Env { return p.env }

// Variant returns the game variant this resolver is bound to.
func (p Paths) Variant() types.GameVariant { return p.variant }

// Root returns the filesystem root.
func (p Paths) Root() string { return p.root }

// ForEnv returns a resolver differing only in environment.
func (p Paths) ForEnv(e env.Env) Paths {
	p.env = e
	return p
}

// Relative returns the path of dir relative to the root.
func (p Paths) Relative(dir Dir) string {
	table, ok := registry[p.variant]
	if !ok || !p.env.Valid() || dir < 0 || int(dir) >= dirCount {
		return ""
	}
	return table[p.env][dir]
}

// Lookup returns the path of dir joined onto the root.
func (p Paths) Lookup(dir Dir) string {
	rel := p.Relative(dir)
	if rel == "" {
		return ""
	}
	return filepath.Join(p.root, rel)
}

// DBFile returns the sqlite database file of the environment.
func (p Paths) DBFile() string {
	return filepath.Join(p.Lookup(EnvDB), constants.DBName)
}

// CreateCacheDirs creates the shared cache directories.
func (p Paths) CreateCacheDirs() error {
	return p.ForEnv(env.Prod).create(CacheDirs)
}

// CreateEnvDirs creates the per-environment directories.
func (p Paths) CreateEnvDirs() error {
	return p.create(EnvDirs)
}

// RemoveEnvOutDirs removes the environment's output directory.
func (p Paths) RemoveEnvOutDirs() error {
	return p.remove(EnvOutDirs)
}

// RemoveCacheDirs removes the shared cache directories.
func (p Paths) RemoveCacheDirs() error {
	return p.ForEnv(env.Prod).remove(CacheDirs)
}

func (p Paths) create(dirs []Dir) error {
	for _, d := range dirs {
		if err := os.MkdirAll(p.Lookup(d), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	return nil
}

func (p Paths) remove(dirs []Dir) error {
	for _, d := range dirs {
		if err := os.RemoveAll(p.Lookup(d)); err != nil {
			return fmt.Errorf("remove %s: %w", d, err)
		}
	}
	return nil
}
