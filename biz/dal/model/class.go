package model

import (
	"cmp"

	"github.com/hankinsohl/fgdb/pkg/types"
)

// ClassRow is an item class; HighestRarity is nil for classes without rarity.
type ClassRow struct {
	Class         string                 `gorm:"column:class;primaryKey" json:"class"`
	HighestRarity *types.NonUniqueRarity `gorm:"column:highest_rarity" json:"highest_rarity"`
}

func (ClassRow) TableName() string { return TableClasses }

func (r ClassRow) Compare(o ClassRow) int {
	return cmp.Or(
		cmp.Compare(r.Class, o.Class),
		cmpOpt(r.HighestRarity, o.HighestRarity),
	)
}

func (r ClassRow) Validate() error {
	if err := required("class", r.Class); err != nil {
		return err
	}
	if r.HighestRarity != nil {
		return r.HighestRarity.Validate()
	}
	return nil
}
