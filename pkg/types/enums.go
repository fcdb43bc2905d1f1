package types

import (
	"encoding/json"
	"slices"
)

func parseEnum[T ~string](kind string, members []T, s string) (T, error) {
	if i := slices.Index(members, T(s)); i >= 0 {
		return members[i], nil
	}
	return "", &ParseError{Kind: kind, Value: s}
}

func unmarshalEnum[T ~string](data []byte, parse func(string) (T, error), dst *T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// ArmorType classifies armour bases by their defence mix.
type ArmorType string

const (
	ArmorChain   ArmorType = "Chain"
	ArmorCloth   ArmorType = "Cloth"
	ArmorLeather ArmorType = "Leather"
	ArmorMail    ArmorType = "Mail"
	ArmorPadded  ArmorType = "Padded"
	ArmorPlate   ArmorType = "Plate"
	ArmorScale   ArmorType = "Scale"
)

var armorTypes = []ArmorType{ArmorChain, ArmorCloth, ArmorLeather, ArmorMail, ArmorPadded, ArmorPlate, ArmorScale}

func ParseArmorType(s string) (ArmorType, error) { return parseEnum("armor type", armorTypes, s) }

func (a ArmorType) Validate() error { _, err := ParseArmorType(string(a)); return err }

func (a *ArmorType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseArmorType, a)
}

// ArmorTypeFromDefences derives the armour type from the base's armour, evasion and energy shield values.
func ArmorTypeFromDefences(armour, evasion, energyShield uint) ArmorType {
	ar, ev, es := armour > 0, evasion > 0, energyShield > 0
	switch {
	case ar && ev && es:
		return ArmorMail
	case ar && ev:
		return ArmorScale
	case ar && es:
		return ArmorChain
	case ev && es:
		return ArmorPadded
	case ar:
		return ArmorPlate
	case ev:
		return ArmorLeather
	default:
		return ArmorCloth
	}
}

// IconShape is the shape of a minimap icon.
type IconShape string

const (
	ShapeCircle          IconShape = "Circle"
	ShapeCross           IconShape = "Cross"
	ShapeDiamond         IconShape = "Diamond"
	ShapeHexagon         IconShape = "Hexagon"
	ShapeKite            IconShape = "Kite"
	ShapeMoon            IconShape = "Moon"
	ShapePentagon        IconShape = "Pentagon"
	ShapeRaindrop        IconShape = "Raindrop"
	ShapeSquare          IconShape = "Square"
	ShapeStar            IconShape = "Star"
	ShapeTriangle        IconShape = "Triangle"
	ShapeUpsideDownHouse IconShape = "UpsideDownHouse"
)

var iconShapes = []IconShape{
	ShapeCircle, ShapeCross, ShapeDiamond, ShapeHexagon, ShapeKite, ShapeMoon,
	ShapePentagon, ShapeRaindrop, ShapeSquare, ShapeStar, ShapeTriangle, ShapeUpsideDownHouse,
}

func ParseIconShape(s string) (IconShape, error) { return parseEnum("icon shape", iconShapes, s) }

func (s IconShape) Validate() error { _, err := ParseIconShape(string(s)); return err }

func (s *IconShape) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseIconShape, s)
}

// Liquidity describes how a base type is traded.
type Liquidity string

const (
	LiquidityExchange   Liquidity = "Exchange"
	LiquidityAsync      Liquidity = "Async"
	LiquidityUntradable Liquidity = "Untradable"
)

var liquidities = []Liquidity{LiquidityExchange, LiquidityAsync, LiquidityUntradable}

func ParseLiquidity(s string) (Liquidity, error) { return parseEnum("liquidity", liquidities, s) }

func (l Liquidity) Validate() error { _, err := ParseLiquidity(string(l)); return err }

func (l *Liquidity) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseLiquidity, l)
}

// Rarity is an item rarity.
type Rarity string

const (
	RarityNormal Rarity = "Normal"
	RarityMagic  Rarity = "Magic"
	RarityRare   Rarity = "Rare"
	RarityUnique Rarity = "Unique"
)

var rarities = []Rarity{RarityNormal, RarityMagic, RarityRare, RarityUnique}

func ParseRarity(s string) (Rarity, error) { return parseEnum("rarity", rarities, s) }

func (r Rarity) Validate() error { _, err := ParseRarity(string(r)); return err }

func (r *Rarity) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseRarity, r)
}

// NonUniqueRarity is a rarity that excludes Unique.
type NonUniqueRarity string

const (
	NonUniqueNormal NonUniqueRarity = "Normal"
	NonUniqueMagic  NonUniqueRarity = "Magic"
	NonUniqueRare   NonUniqueRarity = "Rare"
)

var nonUniqueRarities = []NonUniqueRarity{NonUniqueNormal, NonUniqueMagic, NonUniqueRare}

func ParseNonUniqueRarity(s string) (NonUniqueRarity, error) {
	return parseEnum("non-unique rarity", nonUniqueRarities, s)
}

func (r NonUniqueRarity) Validate() error { _, err := ParseNonUniqueRarity(string(r)); return err }

func (r *NonUniqueRarity) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseNonUniqueRarity, r)
}

// StockColor is one of the game's built-in effect and icon colors.
type StockColor string

const (
	ColorBlue   StockColor = "Blue"
	ColorBrown  StockColor = "Brown"
	ColorCyan   StockColor = "Cyan"
	ColorGreen  StockColor = "Green"
	ColorGrey   StockColor = "Grey"
	ColorOrange StockColor = "Orange"
	ColorPink   StockColor = "Pink"
	ColorPurple StockColor = "Purple"
	ColorRed    StockColor = "Red"
	ColorWhite  StockColor = "White"
	ColorYellow StockColor = "Yellow"
)

var stockColors = []StockColor{
	ColorBlue, ColorBrown, ColorCyan, ColorGreen, ColorGrey, ColorOrange,
	ColorPink, ColorPurple, ColorRed, ColorWhite, ColorYellow,
}

func ParseStockColor(s string) (StockColor, error) { return parseEnum("stock color", stockColors, s) }

func (c StockColor) Validate() error { _, err := ParseStockColor(string(c)); return err }

func (c *StockColor) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseStockColor, c)
}

// StockSound is one of the game's built-in drop sounds.
type StockSound string

const (
	Sound1       StockSound = "1"
	Sound2       StockSound = "2"
	Sound3       StockSound = "3"
	Sound4       StockSound = "4"
	Sound5       StockSound = "5"
	Sound6       StockSound = "6"
	Sound7       StockSound = "7"
	Sound8       StockSound = "8"
	Sound9       StockSound = "9"
	Sound10      StockSound = "10"
	Sound11      StockSound = "11"
	Sound12      StockSound = "12"
	Sound13      StockSound = "13"
	Sound14      StockSound = "14"
	Sound15      StockSound = "15"
	Sound16      StockSound = "16"
	SoundAlchemy StockSound = "ShAlchemy"
	SoundBlessed StockSound = "ShBlessed"
	SoundChaos   StockSound = "ShChaos"
	SoundDivine  StockSound = "ShDivine"
	SoundExalted StockSound = "ShExalted"
	SoundFusing  StockSound = "ShFusing"
	SoundGeneral StockSound = "ShGeneral"
	SoundMirror  StockSound = "ShMirror"
	SoundRegal   StockSound = "ShRegal"
	SoundVaal    StockSound = "ShVaal"
)

var stockSounds = []StockSound{
	Sound1, Sound2, Sound3, Sound4, Sound5, Sound6, Sound7, Sound8,
	Sound9, Sound10, Sound11, Sound12, Sound13, Sound14, Sound15, Sound16,
	SoundAlchemy, SoundBlessed, SoundChaos, SoundDivine, SoundExalted,
	SoundFusing, SoundGeneral, SoundMirror, SoundRegal, SoundVaal,
}

func ParseStockSound(s string) (StockSound, error) { return parseEnum("stock sound", stockSounds, s) }

func (s StockSound) Validate() error { _, err := ParseStockSound(string(s)); return err }

func (s *StockSound) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, ParseStockSound, s)
}
