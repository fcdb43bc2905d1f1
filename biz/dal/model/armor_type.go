package model

import (
	"cmp"

	"github.com/hankinsohl/fgdb/pkg/types"
)

// ArmorTypeRow records the armour type of an armour base.
type ArmorTypeRow struct {
	BaseType  string          `gorm:"column:base_type;primaryKey" json:"base_type"`
	ArmorType types.ArmorType `gorm:"column:armor_type" json:"armor_type"`
}

func (ArmorTypeRow) TableName() string { return TableArmorTypes }

func (r ArmorTypeRow) Compare(o ArmorTypeRow) int {
	return cmp.Or(
		cmp.Compare(r.BaseType, o.BaseType),
		cmp.Compare(r.ArmorType, o.ArmorType),
	)
}

func (r ArmorTypeRow) Validate() error {
	if err := required("base_type", r.BaseType); err != nil {
		return err
	}
	return r.ArmorType.Validate()
}
