// Package constants holds fixed names shared by the filesystem layout, repository and codec.
package constants

// Store and configuration file names.
const (
	DBName         = "fgdb.db"
	ConfigFileName = "fgdb.yaml"
)

// Directory names composing the on-disk layout.
const (
	AssetsDir         = "assets"
	AssetsJSONTestDir = "json/test"
	CacheDir          = "cache"
	CacheJSONDir      = "json"
	CacheTimestampDir = "timestamp"
	CacheZipDir       = "zip"
	EnvDir            = "env"
	EnvDBDir          = "db"
	EnvOutDir         = "out"
)

// Repository layout, relative to <repository>/<game variant>.
const (
	RepositoryZipDir       = "zip"
	RepositoryZipFileName  = "fgdb.zip"
	RepositoryTimestampDir = "timestamp"
	TimestampFileName      = "timestamp.txt"
)

// JSONTab is the indentation width of exported catalog JSON.
const JSONTab = 2

// JSONExt is the extension of per-table catalog files.
const JSONExt = ".json"

// KeySeparator joins the parts of composite keys; NullKeyPart stands in for an absent part.
const (
	KeySeparator = "::"
	NullKeyPart  = "null"
)
