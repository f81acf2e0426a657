package base16

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/jmylchreest/base16gen/internal/colour"
)

// ErrInvalidPalette is returned when a palette is missing slots.
var ErrInvalidPalette = errors.New("invalid base16 palette")

// Palette is a fixed set of sixteen colours, one per slot.
// Values may repeat; every slot is always present.
type Palette struct {
	colours [SlotCount]colour.RGB
	variant Variant
	padded  int
}

// NewPalette builds a palette from an explicit slot assignment.
// Every one of the sixteen slots must be present.
func NewPalette(values map[Slot]colour.RGB, variant Variant) (*Palette, error) {
	if variant != VariantDark && variant != VariantLight {
		return nil, fmt.Errorf("%w: variant must be dark or light, got %q", ErrInvalidPalette, variant)
	}

	var missing []string
	p := &Palette{variant: variant}
	for _, s := range Slots() {
		c, ok := values[s]
		if !ok {
			missing = append(missing, s.String())
			continue
		}
		p.colours[s] = c
	}
	for s := range values {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: unknown slot index %d", ErrInvalidPalette, uint8(s))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidPalette, strings.Join(missing, ", "))
	}
	return p, nil
}

// NewPaletteFromHex builds a palette from slot names to hex strings,
// e.g. {"base00": "#000000", ...}.
func NewPaletteFromHex(values map[string]string, variant Variant) (*Palette, error) {
	slots := make(map[Slot]colour.RGB, len(values))
	for name, hex := range values {
		s, err := ParseSlot(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPalette, err)
		}
		c, err := colour.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPalette, name, err)
		}
		slots[s] = c
	}
	return NewPalette(slots, variant)
}

// Get returns the colour in a slot.
func (p *Palette) Get(s Slot) colour.RGB {
	return p.colours[s]
}

// Hex returns the colour in a slot as "#rrggbb".
func (p *Palette) Hex(s Slot) string {
	return p.colours[s].Hex()
}

// Variant returns the variant the palette was built for.
func (p *Palette) Variant() Variant {
	return p.variant
}

// Padded returns how many slots were filled by repeating colours because
// the source had fewer than sixteen.
func (p *Palette) Padded() int {
	return p.padded
}

// Colours returns the sixteen colours in slot order.
func (p *Palette) Colours() []colour.RGB {
	out := make([]colour.RGB, SlotCount)
	copy(out, p.colours[:])
	return out
}

// All iterates the slots in base16 order.
func (p *Palette) All() iter.Seq2[Slot, colour.RGB] {
	return func(yield func(Slot, colour.RGB) bool) {
		for i, c := range p.colours {
			if !yield(Slot(i), c) {
				return
			}
		}
	}
}

// MarshalJSON encodes the palette as an ordered object of slot name to hex.
func (p *Palette) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for s, c := range p.All() {
		if s > 0 {
			sb.WriteByte(',')
		}
		key, _ := json.Marshal(s.String())
		val, _ := json.Marshal(c.Hex())
		sb.Write(key)
		sb.WriteByte(':')
		sb.Write(val)
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}
