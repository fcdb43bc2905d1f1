package types

import (
	"encoding/json"
	"math"
)

// Range bounds.
const (
	MinFontSize    = 18
	MaxFontSize    = 45
	MinGemLevel    = 1
	MaxGemLevel    = 21
	MinIconSize    = 0
	MaxIconSize    = 2
	MinItemLevel   = 0
	MaxItemLevel   = 100
	MinSoundVolume = 0
	MaxSoundVolume = 300
	MinStackSize   = 1
	MinPrice       = 0
	MinChannel     = 0
	MaxChannel     = 255
)

func checkRange(kind string, v, lo, hi float64) error {
	if v < lo || v > hi || math.IsNaN(v) {
		return &RangeError{Kind: kind, Value: v, Min: lo, Max: hi}
	}
	return nil
}

func decodeInt(data []byte) (int, error) {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// FontSize is a drop label font size in [18, 45].
type FontSize int

func NewFontSize(v int) (FontSize, error) {
	f := FontSize(v)
	return f, f.Validate()
}

func (f FontSize) Validate() error {
	return checkRange("font size", float64(f), MinFontSize, MaxFontSize)
}

func (f *FontSize) UnmarshalJSON(data []byte) error {
	n, err := decodeInt(data)
	if err != nil {
		return err
	}
	v, err := NewFontSize(n)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// GemLevel is a skill gem level in [1, 21].
type GemLevel int

func NewGemLevel(v int) (GemLevel, error) {
	g := GemLevel(v)
	return g, g.Validate()
}

func (g GemLevel) Validate() error {
	return checkRange("gem level", float64(g), MinGemLevel, MaxGemLevel)
}

func (g *GemLevel) UnmarshalJSON(data []byte) error {
	n, err := decodeInt(data)
	if err != nil {
		return err
	}
	v, err := NewGemLevel(n)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// IconSize is a minimap icon size in [0, 2]; 0 is the largest.
type IconSize int

func NewIconSize(v int) (IconSize, error) {
	s := IconSize(v)
	return s, s.Validate()
}

func (s IconSize) Validate() error {
	return checkRange("icon size", float64(s), MinIconSize, MaxIconSize)
}

func (s *IconSize) UnmarshalJSON(data []byte) error {
	n, err := decodeInt(data)
	if err != nil {
		return err
	}
	v, err := NewIconSize(n)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ItemLevel is an item level in [0, 100].
type ItemLevel int

func NewItemLevel(v int) (ItemLevel, error) {
	l := ItemLevel(v)
	return l, l.Validate()
}

func (l ItemLevel) Validate() error {
	return checkRange("item level", float64(l), MinItemLevel, MaxItemLevel)
}

func (l *ItemLevel) UnmarshalJSON(data []byte) error {
	n, err := decodeInt(data)
	if err != nil {
		return err
	}
	v, err := NewItemLevel(n)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// SoundVolume is a drop sound volume in [0, 300].
type SoundVolume int

func NewSoundVolume(v int) (SoundVolume, error) {
	s := SoundVolume(v)
	return s, s.Validate()
}

func (s SoundVolume) Validate() error {
	return checkRange("sound volume", float64(s), MinSoundVolume, MaxSoundVolume)
}

func (s *SoundVolume) UnmarshalJSON(data []byte) error {
	n, err := decodeInt(data)
	if err != nil {
		return err
	}
	v, err := NewSoundVolume(n)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// StackSize is the maximum stack size of a base type; always positive.
type StackSize int

func NewStackSize(v int) (StackSize, error) {
	s := StackSize(v)
	return s, s.Validate()
}

func (s StackSize) Validate() error {
	return checkRange("stack size", float64(s), MinStackSize, math.Inf(1))
}

func (s *StackSize) UnmarshalJSON(data []byte) error {
	n, err := decodeInt(data)
	if err != nil {
		return err
	}
	v, err := NewStackSize(n)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Price is a non-negative price in chaos-equivalent units.
type Price float32

func NewPrice(v float32) (Price, error) {
	p := Price(v)
	return p, p.Validate()
}

func (p Price) Validate() error {
	return checkRange("price", float64(p), MinPrice, math.Inf(1))
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var f float32
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	v, err := NewPrice(f)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Channel is one 8-bit RGBA component.
type Channel int

func NewChannel(v int) (Channel, error) {
	c := Channel(v)
	return c, c.Validate()
}

func (c Channel) Validate() error {
	return checkRange("color channel", float64(c), MinChannel, MaxChannel)
}

func (c *Channel) UnmarshalJSON(data []byte) error {
	n, err := decodeInt(data)
	if err != nil {
		return err
	}
	v, err := NewChannel(n)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
