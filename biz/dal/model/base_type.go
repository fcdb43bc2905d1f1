package model

import (
	"cmp"

	"github.com/hankinsohl/fgdb/pkg/types"
)

// BaseTypeRow describes a base type: its class, maximum stack size and how it trades.
type BaseTypeRow struct {
	BaseType  string          `gorm:"column:base_type;primaryKey" json:"base_type"`
	Class     string          `gorm:"column:class" json:"class"`
	StackSize types.StackSize `gorm:"column:stack_size" json:"stack_size"`
	Liquidity types.Liquidity `gorm:"column:liquidity" json:"liquidity"`
	URL       *string         `gorm:"column:url" json:"url"`
}

func (BaseTypeRow) TableName() string { return TableBaseTypes }

func (r BaseTypeRow) Compare(o BaseTypeRow) int {
	return cmp.Or(
		cmp.Compare(r.BaseType, o.BaseType),
		cmp.Compare(r.Class, o.Class),
		cmp.Compare(r.StackSize, o.StackSize),
		cmp.Compare(r.Liquidity, o.Liquidity),
		cmpOpt(r.URL, o.URL),
	)
}

func (r BaseTypeRow) Validate() error {
	if err := required("base_type", r.BaseType); err != nil {
		return err
	}
	if err := required("class", r.Class); err != nil {
		return err
	}
	if err := r.StackSize.Validate(); err != nil {
		return err
	}
	if err := r.Liquidity.Validate(); err != nil {
		return err
	}
	if r.URL != nil {
		return validateURL("url", *r.URL)
	}
	return nil
}
