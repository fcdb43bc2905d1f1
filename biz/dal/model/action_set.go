package model

import (
	"cmp"

	"github.com/hankinsohl/fgdb/pkg/types"
)

// ActionSetRow is a named bundle of presentation rules applied to a drop.
//
// The minimap icon and the sound are stored as flat columns and exchanged as
// the nested "icon" and "sound" objects.
type ActionSetRow struct {
	ActionSet            string             `gorm:"column:action_set;primaryKey"`
	IsTemplateCompatible bool               `gorm:"column:is_template_compatible"`
	FontSize             *types.FontSize    `gorm:"column:font_size"`
	TextColor            types.StockColor   `gorm:"column:text_color"`
	BorderColor          types.StockColor   `gorm:"column:border_color"`
	PlayEffectColor      *types.StockColor  `gorm:"column:play_effect_color"`
	BackgroundColor      string             `gorm:"column:background_color"`
	MinimapIconShape     *types.IconShape   `gorm:"column:minimap_icon_shape"`
	MinimapIconSize      *types.IconSize    `gorm:"column:minimap_icon_size"`
	MinimapIconColor     *types.StockColor  `gorm:"column:minimap_icon_color"`
	Volume               *types.SoundVolume `gorm:"column:volume"`
	StockSound           *types.StockSound  `gorm:"column:stock_sound"`
	CustomSound          *string            `gorm:"column:custom_sound"`
}

type actionSetWire struct {
	ActionSet            string            `json:"action_set"`
	IsTemplateCompatible bool              `json:"is_template_compatible"`
	FontSize             *types.FontSize   `json:"font_size"`
	TextColor            types.StockColor  `json:"text_color"`
	BorderColor          types.StockColor  `json:"border_color"`
	PlayEffectColor      *types.StockColor `json:"play_effect_color"`
	BackgroundColor      string            `json:"background_color"`
	Icon                 *types.Icon       `json:"icon"`
	Sound                *types.Sound      `json:"sound"`
}

func (ActionSetRow) TableName() string { return TableActionSets }

// Icon rebuilds the minimap icon from its columns.
func (r ActionSetRow) Icon() (*types.Icon, error) {
	return types.IconFromColumns(r.MinimapIconShape, r.MinimapIconSize, r.MinimapIconColor)
}

// Sound rebuilds the drop sound from its columns.
func (r ActionSetRow) Sound() (*types.Sound, error) {
	return types.SoundFromColumns(r.Volume, r.StockSound, r.CustomSound)
}

// SetIcon spreads icon over the icon columns; nil clears them.
func (r *ActionSetRow) SetIcon(icon *types.Icon) {
	r.MinimapIconShape, r.MinimapIconSize, r.MinimapIconColor = icon.Columns()
}

// SetSound spreads sound over the sound columns; nil clears them.
func (r *ActionSetRow) SetSound(sound *types.Sound) {
	r.Volume, r.StockSound, r.CustomSound = sound.Columns()
}

func (r ActionSetRow) MarshalJSON() ([]byte, error) {
	icon, err := r.Icon()
	if err != nil {
		return nil, err
	}
	sound, err := r.Sound()
	if err != nil {
		return nil, err
	}
	return marshalPlain(actionSetWire{
		ActionSet:            r.ActionSet,
		IsTemplateCompatible: r.IsTemplateCompatible,
		FontSize:             r.FontSize,
		TextColor:            r.TextColor,
		BorderColor:          r.BorderColor,
		PlayEffectColor:      r.PlayEffectColor,
		BackgroundColor:      r.BackgroundColor,
		Icon:                 icon,
		Sound:                sound,
	})
}

func (r *ActionSetRow) UnmarshalJSON(data []byte) error {
	var w actionSetWire
	if err := unmarshalStrict(data, &w); err != nil {
		return err
	}
	row := ActionSetRow{
		ActionSet:            w.ActionSet,
		IsTemplateCompatible: w.IsTemplateCompatible,
		FontSize:             w.FontSize,
		TextColor:            w.TextColor,
		BorderColor:          w.BorderColor,
		PlayEffectColor:      w.PlayEffectColor,
		BackgroundColor:      w.BackgroundColor,
	}
	row.SetIcon(w.Icon)
	row.SetSound(w.Sound)
	*r = row
	return nil
}

func (r ActionSetRow) Compare(o ActionSetRow) int {
	return cmp.Or(
		cmp.Compare(r.ActionSet, o.ActionSet),
		cmpBool(r.IsTemplateCompatible, o.IsTemplateCompatible),
		cmpOpt(r.FontSize, o.FontSize),
		cmp.Compare(r.TextColor, o.TextColor),
		cmp.Compare(r.BorderColor, o.BorderColor),
		cmpOpt(r.PlayEffectColor, o.PlayEffectColor),
		cmp.Compare(r.BackgroundColor, o.BackgroundColor),
		cmpOpt(r.MinimapIconShape, o.MinimapIconShape),
		cmpOpt(r.MinimapIconSize, o.MinimapIconSize),
		cmpOpt(r.MinimapIconColor, o.MinimapIconColor),
		cmpOpt(r.Volume, o.Volume),
		cmpOpt(r.StockSound, o.StockSound),
		cmpOpt(r.CustomSound, o.CustomSound),
	)
}

func (r ActionSetRow) Validate() error {
	if err := required("action_set", r.ActionSet); err != nil {
		return err
	}
	if err := required("background_color", r.BackgroundColor); err != nil {
		return err
	}
	if r.FontSize != nil {
		if err := r.FontSize.Validate(); err != nil {
			return err
		}
	}
	if err := r.TextColor.Validate(); err != nil {
		return err
	}
	if err := r.BorderColor.Validate(); err != nil {
		return err
	}
	if r.PlayEffectColor != nil {
		if err := r.PlayEffectColor.Validate(); err != nil {
			return err
		}
	}
	if _, err := r.Icon(); err != nil {
		return err
	}
	sound, err := r.Sound()
	if err != nil {
		return err
	}
	if sound != nil {
		return sound.Validate()
	}
	return nil
}
