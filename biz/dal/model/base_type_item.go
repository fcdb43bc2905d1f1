package model

import (
	"cmp"

	"gorm.io/gorm"

	"github.com/hankinsohl/fgdb/pkg/constants"
)

// BaseTypeItemRow pairs a base type with a named item of that base. A nil Item
// refers to the base type itself.
type BaseTypeItemRow struct {
	BaseTypeItem string  `gorm:"column:base_type_item;primaryKey" json:"-"`
	BaseType     string  `gorm:"column:base_type" json:"base_type"`
	Item         *string `gorm:"column:item" json:"item"`
	IsUnique     bool    `gorm:"column:is_unique" json:"is_unique"`
}

// BaseTypeItemKey forms the composite key <base_type>::<item>, using null for a nil item.
func BaseTypeItemKey(baseType string, item *string) string {
	return baseType + constants.KeySeparator + keyPart(item)
}

func (BaseTypeItemRow) TableName() string { return TableBaseTypeItems }

// Key returns the composite primary key.
func (r BaseTypeItemRow) Key() string { return BaseTypeItemKey(r.BaseType, r.Item) }

// BeforeCreate fills the derived key column.
func (r *BaseTypeItemRow) BeforeCreate(*gorm.DB) error {
	r.BaseTypeItem = r.Key()
	return nil
}

func (r BaseTypeItemRow) Compare(o BaseTypeItemRow) int {
	return cmp.Or(
		cmp.Compare(r.BaseType, o.BaseType),
		cmpOpt(r.Item, o.Item),
		cmpBool(r.IsUnique, o.IsUnique),
	)
}

func (r BaseTypeItemRow) Validate() error {
	return required("base_type", r.BaseType)
}
