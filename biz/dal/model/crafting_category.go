package model

import (
	"cmp"

	"github.com/hankinsohl/fgdb/pkg/types"
)

// CraftingCategoryRow maps a crafting category to the highest rarity it can be crafted to.
type CraftingCategoryRow struct {
	CraftingCategory string                `gorm:"column:crafting_category;primaryKey" json:"crafting_category"`
	HighestRarity    types.NonUniqueRarity `gorm:"column:highest_rarity" json:"highest_rarity"`
}

func (CraftingCategoryRow) TableName() string { return TableCraftingCategories }

func (r CraftingCategoryRow) Compare(o CraftingCategoryRow) int {
	return cmp.Or(
		cmp.Compare(r.CraftingCategory, o.CraftingCategory),
		cmp.Compare(r.HighestRarity, o.HighestRarity),
	)
}

func (r CraftingCategoryRow) Validate() error {
	if err := required("crafting_category", r.CraftingCategory); err != nil {
		return err
	}
	return r.HighestRarity.Validate()
}
