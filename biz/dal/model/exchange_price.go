package model

import (
	"cmp"

	"github.com/hankinsohl/fgdb/pkg/types"
)

// ExchangePriceRow is the currency-exchange price of a base type. Rows compare by base type only.
type ExchangePriceRow struct {
	BaseType string      `gorm:"column:base_type;primaryKey" json:"base_type"`
	Price    types.Price `gorm:"column:price" json:"price"`
}

func (ExchangePriceRow) TableName() string { return TableExchangePrices }

func (r ExchangePriceRow) Compare(o ExchangePriceRow) int {
	return cmp.Compare(r.BaseType, o.BaseType)
}

func (r ExchangePriceRow) Validate() error {
	if err := required("base_type", r.BaseType); err != nil {
		return err
	}
	return r.Price.Validate()
}
