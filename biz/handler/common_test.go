package handler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hankinsohl/fgdb/biz/dal/db"
	"github.com/hankinsohl/fgdb/biz/dal/table"
	"github.com/hankinsohl/fgdb/pkg/env"
	"github.com/hankinsohl/fgdb/pkg/envpool"
	"github.com/hankinsohl/fgdb/pkg/types"
	"github.com/hankinsohl/fgdb/pkg/validator"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: %q", env.ErrUnknownEnv, "qa"), 404},
		{fmt.Errorf("%w: gems", db.ErrUnknownTable), 404},
		{fmt.Errorf("download: %w", fs.ErrNotExist), 404},
		{validator.ErrPayloadTooLarge, 413},
		{validator.ErrUnsupportedType, 400},
		{&table.OpError{Table: "colors", Op: "import", Err: fmt.Errorf("%w: row 0", table.ErrInvalidData)}, 400},
		{&types.RangeError{Kind: "font size", Value: 50, Min: 18, Max: 45}, 400},
		{fmt.Errorf("envpool: acquire: %w", context.DeadlineExceeded), 503},
		{envpool.ErrEmptyPool, 503},
		{errors.New("disk on fire"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
