package storage

import (
	"fmt"

	"github.com/hankinsohl/fgdb/pkg/config"
	"github.com/hankinsohl/fgdb/pkg/storage/local"
	"github.com/hankinsohl/fgdb/pkg/storage/s3"
)

// New creates the repository backend selected by cfg.
func New(cfg config.RepositoryConfig) (Storage, error) {
	switch cfg.Kind {
	case "", "local":
		return local.New(cfg.Local.Path)

	case "s3":
		return s3.New(s3.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PathStyle: cfg.S3.PathStyle,
			Prefix:    cfg.S3.Prefix,
		})

	default:
		return nil, fmt.Errorf("unsupported repository kind: %s", cfg.Kind)
	}
}
