package types

import "encoding/json"

// SoundType distinguishes built-in sounds from custom sound files.
type SoundType string

const (
	SoundTypeCustom SoundType = "Custom"
	SoundTypeStock  SoundType = "Stock"
)

var soundTypes = []SoundType{SoundTypeCustom, SoundTypeStock}

func ParseSoundType(s string) (SoundType, error) { return parseEnum("sound type", soundTypes, s) }

func (t *SoundType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseSoundType, t)
}

// Sound is a drop sound. Stock sounds name a StockSound; custom sounds name a
// row of the sounds table.
type Sound struct {
	Volume    *SoundVolume `json:"volume"`
	SoundType SoundType    `json:"sound_type"`
	Sound     string       `json:"sound"`
}

// SoundFromColumns rebuilds a sound from its stored columns. Stock and custom
// are mutually exclusive, and a volume without either is rejected.
func SoundFromColumns(volume *SoundVolume, stock *StockSound, custom *string) (*Sound, error) {
	switch {
	case stock == nil && custom == nil:
		if volume != nil {
			return nil, &CompositeError{Kind: "sound", Reason: "volume is present but stock and custom sound are absent"}
		}
		return nil, nil
	case stock != nil && custom != nil:
		return nil, &CompositeError{Kind: "sound", Reason: "stock and custom sound are both present"}
	case stock != nil:
		if err := stock.Validate(); err != nil {
			return nil, err
		}
		return &Sound{Volume: volume, SoundType: SoundTypeStock, Sound: string(*stock)}, nil
	default:
		return &Sound{Volume: volume, SoundType: SoundTypeCustom, Sound: *custom}, nil
	}
}

// Columns spreads the sound into volume, stock and custom columns.
func (s *Sound) Columns() (*SoundVolume, *StockSound, *string) {
	if s == nil {
		return nil, nil, nil
	}
	var volume *SoundVolume
	if s.Volume != nil {
		v := *s.Volume
		volume = &v
	}
	name := s.Sound
	if s.SoundType == SoundTypeStock {
		stock := StockSound(name)
		return volume, &stock, nil
	}
	return volume, nil, &name
}

func (s Sound) Validate() error {
	if s.Volume != nil {
		if err := s.Volume.Validate(); err != nil {
			return err
		}
	}
	switch s.SoundType {
	case SoundTypeStock:
		_, err := ParseStockSound(s.Sound)
		return err
	case SoundTypeCustom:
		if s.Sound == "" {
			return &CompositeError{Kind: "sound", Reason: "custom sound name is empty"}
		}
		return nil
	default:
		return &ParseError{Kind: "sound type", Value: string(s.SoundType)}
	}
}

// UnmarshalJSON validates the decoded sound as a whole.
func (s *Sound) UnmarshalJSON(data []byte) error {
	type plain Sound
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	decoded := Sound(p)
	if err := decoded.Validate(); err != nil {
		return err
	}
	*s = decoded
	return nil
}
