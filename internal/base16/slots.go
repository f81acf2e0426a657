// Package base16 maps extracted colours onto the sixteen base16 slots.
package base16

import (
	"fmt"
	"strings"
)

// SlotCount is the number of colours in a base16 palette.
const SlotCount = 16

// Slot names one of the sixteen base16 colours, base00 through base0F.
type Slot uint8

// The base16 slots. base00-base07 run from background to foreground;
// base08-base0F are accents.
const (
	Base00 Slot = iota
	Base01
	Base02
	Base03
	Base04
	Base05
	Base06
	Base07
	Base08
	Base09
	Base0A
	Base0B
	Base0C
	Base0D
	Base0E
	Base0F
)

// Slots returns all sixteen slots in base16 order.
func Slots() []Slot {
	slots := make([]Slot, SlotCount)
	for i := range slots {
		slots[i] = Slot(i)
	}
	return slots
}

// String returns the slot name, e.g. "base0A".
func (s Slot) String() string {
	return fmt.Sprintf("base%02X", uint8(s))
}

// Index returns the two-digit upper-case hex index, e.g. "0A".
func (s Slot) Index() string {
	return fmt.Sprintf("%02X", uint8(s))
}

// Valid reports whether s is one of the sixteen slots.
func (s Slot) Valid() bool {
	return s < SlotCount
}

// IsAccent reports whether s is one of base08-base0F.
func (s Slot) IsAccent() bool {
	return s >= Base08 && s <= Base0F
}

// ParseSlot parses a slot name such as "base0A" (case-insensitive).
func ParseSlot(name string) (Slot, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, s := range Slots() {
		if strings.ToLower(s.String()) == lower {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown base16 slot: %q", name)
}

// Variant selects which end of the luminance range becomes the background.
type Variant string

const (
	// VariantDark puts the darkest colour in base00.
	VariantDark Variant = "dark"
	// VariantLight puts the lightest colour in base00.
	VariantLight Variant = "light"
	// VariantAuto picks dark or light from the image's dominant colour.
	// The mapper itself does not accept it.
	VariantAuto Variant = "auto"
)

// ValidVariants returns the variant names accepted on the command line.
func ValidVariants() []Variant {
	return []Variant{VariantDark, VariantLight, VariantAuto}
}

// ParseVariant parses a variant name (case-insensitive). Empty means dark.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantDark, nil
	case VariantDark, VariantLight, VariantAuto:
		return v, nil
	default:
		return "", fmt.Errorf("invalid variant %q (valid: %v)", s, ValidVariants())
	}
}

// IsDark reports whether the variant is dark.
func (v Variant) IsDark() bool {
	return v == VariantDark
}

var slotDescriptions = [SlotCount]string{
	"Default Background",
	"Lighter Background",
	"Selection Background",
	"Comments, Invisibles",
	"Dark Foreground",
	"Default Foreground",
	"Light Foreground",
	"Light Background",
	"Variables, Tags",
	"Integers, Constants",
	"Classes, Search",
	"Strings",
	"Support, Regex",
	"Functions",
	"Keywords",
	"Deprecated",
}

// Description returns the conventional base16 usage of a slot.
func (s Slot) Description() string {
	if !s.Valid() {
		return ""
	}
	return slotDescriptions[s]
}
