package model

import (
	"cmp"
	"strings"

	"gorm.io/gorm"

	"github.com/hankinsohl/fgdb/pkg/constants"
	"github.com/hankinsohl/fgdb/pkg/types"
)

// AsyncPriceRow is the price of an asynchronously traded drop, optionally
// narrowed by item, minimum item level, gem level and rarity.
//
// Rows are identified, ordered and compared by their composite key only.
type AsyncPriceRow struct {
	AsyncPriceKey    string           `gorm:"column:async_price_key;primaryKey" json:"-"`
	BaseTypeItem     string           `gorm:"column:base_type_item" json:"-"`
	BaseType         string           `gorm:"column:base_type" json:"base_type"`
	Item             *string          `gorm:"column:item" json:"item"`
	MinimumItemLevel *types.ItemLevel `gorm:"column:minimum_item_level" json:"minimum_item_level"`
	GemLevel         *types.GemLevel  `gorm:"column:gem_level" json:"gem_level"`
	Rarity           *types.Rarity    `gorm:"column:rarity" json:"rarity"`
	Price            types.Price      `gorm:"column:price" json:"price"`
}

func (AsyncPriceRow) TableName() string { return TableAsyncPrices }

// Key returns <base_type>::<item>::<minimum_item_level>::<gem_level>::<rarity> with null for absent parts.
func (r AsyncPriceRow) Key() string {
	return strings.Join([]string{
		r.BaseType,
		keyPart(r.Item),
		keyPart(r.MinimumItemLevel),
		keyPart(r.GemLevel),
		keyPart(r.Rarity),
	}, constants.KeySeparator)
}

// BeforeCreate fills the derived key columns.
func (r *AsyncPriceRow) BeforeCreate(*gorm.DB) error {
	r.AsyncPriceKey = r.Key()
	r.BaseTypeItem = BaseTypeItemKey(r.BaseType, r.Item)
	return nil
}

func (r AsyncPriceRow) Compare(o AsyncPriceRow) int {
	return cmp.Compare(r.Key(), o.Key())
}

func (r AsyncPriceRow) Validate() error {
	if err := required("base_type", r.BaseType); err != nil {
		return err
	}
	if r.MinimumItemLevel != nil {
		if err := r.MinimumItemLevel.Validate(); err != nil {
			return err
		}
	}
	if r.GemLevel != nil {
		if err := r.GemLevel.Validate(); err != nil {
			return err
		}
	}
	if r.Rarity != nil {
		if err := r.Rarity.Validate(); err != nil {
			return err
		}
	}
	return r.Price.Validate()
}
