package model

import (
	"cmp"

	"github.com/hankinsohl/fgdb/pkg/types"
)

// Pixel is an RGBA color value.
type Pixel struct {
	R types.Channel `json:"r"`
	G types.Channel `json:"g"`
	B types.Channel `json:"b"`
	A types.Channel `json:"a"`
}

// ColorRow is a named RGBA color. In JSON the channels nest under "pixel".
type ColorRow struct {
	Color string        `gorm:"column:color;primaryKey"`
	URL   string        `gorm:"column:url"`
	Red   types.Channel `gorm:"column:red"`
	Green types.Channel `gorm:"column:green"`
	Blue  types.Channel `gorm:"column:blue"`
	Alpha types.Channel `gorm:"column:alpha"`
}

type colorWire struct {
	Color string `json:"color"`
	URL   string `json:"url"`
	Pixel Pixel  `json:"pixel"`
}

func (ColorRow) TableName() string { return TableColors }

// Pixel returns the channels as one value.
func (r ColorRow) Pixel() Pixel {
	return Pixel{R: r.Red, G: r.Green, B: r.Blue, A: r.Alpha}
}

func (r ColorRow) MarshalJSON() ([]byte, error) {
	return marshalPlain(colorWire{Color: r.Color, URL: r.URL, Pixel: r.Pixel()})
}

func (r *ColorRow) UnmarshalJSON(data []byte) error {
	var w colorWire
	if err := unmarshalStrict(data, &w); err != nil {
		return err
	}
	*r = ColorRow{
		Color: w.Color,
		URL:   w.URL,
		Red:   w.Pixel.R,
		Green: w.Pixel.G,
		Blue:  w.Pixel.B,
		Alpha: w.Pixel.A,
	}
	return nil
}

func (r ColorRow) Compare(o ColorRow) int {
	return cmp.Or(
		cmp.Compare(r.Color, o.Color),
		cmp.Compare(r.URL, o.URL),
		cmp.Compare(r.Red, o.Red),
		cmp.Compare(r.Green, o.Green),
		cmp.Compare(r.Blue, o.Blue),
		cmp.Compare(r.Alpha, o.Alpha),
	)
}

func (r ColorRow) Validate() error {
	if err := required("color", r.Color); err != nil {
		return err
	}
	if err := validateURL("url", r.URL); err != nil {
		return err
	}
	for _, c := range []types.Channel{r.Red, r.Green, r.Blue, r.Alpha} {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
