package animation

import (
	"strings"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// Hex is a six-digit RRGGBB color.
type Hex string

// Palette.
const (
	White      Hex = "ffffff"
	Red        Hex = "ff0000"
	LightRed   Hex = "603018"
	Orange     Hex = "ff3300"
	Green      Hex = "00ff00"
	LightGreen Hex = "184518"
	Blue       Hex = "0000ff"
	LightBlue  Hex = "184066"
	Purple     Hex = "4b0098"
	Yellow     Hex = "ffd400"
	Black      Hex = "000000"
)

var palette = map[string]Hex{
	"white":       White,
	"red":         Red,
	"light_red":   LightRed,
	"orange":      Orange,
	"green":       Green,
	"light_green": LightGreen,
	"blue":        Blue,
	"light_blue":  LightBlue,
	"purple":      Purple,
	"yellow":      Yellow,
	"black":       Black,
}

// breathColors maps each play color to its dimmed idle variant.
var breathColors = map[domain.Color]Hex{
	domain.ColorRed:   LightRed,
	domain.ColorGreen: LightGreen,
	domain.ColorBlue:  LightBlue,
}

// LookupColor resolves a palette name, case-insensitively. Unknown names are Black (off).
func LookupColor(name string) (Hex, bool) {
	hex, ok := palette[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Black, false
	}
	return hex, true
}

// ColorOf returns the full-intensity hex of a play color.
func ColorOf(c domain.Color) Hex {
	hex, _ := LookupColor(c.Name())
	return hex
}

// BreathColor returns the dimmed variant of a play color, Black if c is not on the allow-list.
func BreathColor(c domain.Color) Hex {
	if hex, ok := breathColors[c]; ok {
		return hex
	}
	return Black
}
