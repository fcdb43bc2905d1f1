package types

import (
	"fmt"
	"strings"
)

// GameVariant selects which game's catalog is managed.
type GameVariant int

const (
	Poe1 GameVariant = iota
	Poe2
)

var variantCodes = [...]string{"poe1", "poe2"}

var variantLabels = [...]string{"POE 1", "POE 2"}

// GameVariants lists every variant.
func GameVariants() []GameVariant { return []GameVariant{Poe1, Poe2} }

// Code is the short name used in paths and configuration.
func (g GameVariant) Code() string {
	if g < Poe1 || g > Poe2 {
		return ""
	}
	return variantCodes[g]
}

func (g GameVariant) String() string {
	if g < Poe1 || g > Poe2 {
		return fmt.Sprintf("GameVariant(%d)", int(g))
	}
	return variantLabels[g]
}

// ParseGameVariant accepts a code ("poe1") or a label ("POE 1"), ignoring case.
func ParseGameVariant(s string) (GameVariant, error) {
	needle := strings.TrimSpace(s)
	for _, g := range GameVariants() {
		if strings.EqualFold(needle, variantCodes[g]) || strings.EqualFold(needle, variantLabels[g]) {
			return g, nil
		}
	}
	return 0, &ParseError{Kind: "game variant", Value: s}
}

func (g GameVariant) MarshalText() ([]byte, error) {
	if code := g.Code(); code != "" {
		return []byte(code), nil
	}
	return nil, &ParseError{Kind: "game variant", Value: g.String()}
}

func (g *GameVariant) UnmarshalText(text []byte) error {
	v, err := ParseGameVariant(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
