package base16

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jmylchreest/base16gen/internal/colour"
)

// ErrInsufficientPalette is returned when there are too few colours to fill
// the palette and padding is disabled, or when there are none at all.
var ErrInsufficientPalette = errors.New("insufficient colours for a base16 palette")

// AccentOrder decides how the eight mid-luminance colours are laid out
// across base08-base0F.
type AccentOrder string

const (
	// AccentOrderLuminance assigns accents in luminance order.
	AccentOrderLuminance AccentOrder = "luminance"
	// AccentOrderHue assigns each accent slot the remaining colour nearest its
	// conventional hue (base08 red, base09 orange, ... base0F brown).
	AccentOrderHue AccentOrder = "hue"
)

// ParseAccentOrder parses an accent order name. Empty means luminance.
func ParseAccentOrder(s string) (AccentOrder, error) {
	switch o := AccentOrder(s); o {
	case "":
		return AccentOrderLuminance, nil
	case AccentOrderLuminance, AccentOrderHue:
		return o, nil
	default:
		return "", fmt.Errorf("invalid accent order %q (valid: luminance, hue)", s)
	}
}

// rankToSlot maps a luminance rank, counted from the background end, to a
// slot. Ranks 0-3 form the background ramp, 12-15 the foreground ramp and
// 4-11 the accents.
var rankToSlot = [SlotCount]Slot{
	Base00, Base01, Base02, Base03,
	Base08, Base09, Base0A, Base0B, Base0C, Base0D, Base0E, Base0F,
	Base04, Base05, Base06, Base07,
}

// accentHues are the conventional hues of base08-base0F in degrees.
var accentHues = [8]float64{
	0,   // base08 red
	30,  // base09 orange
	60,  // base0A yellow
	120, // base0B green
	180, // base0C cyan
	240, // base0D blue
	300, // base0E magenta
	15,  // base0F brown
}

// Mapper maps an extracted colour list onto a Palette. The zero value pads
// short inputs and orders accents by luminance.
type Mapper struct {
	// Strict fails with ErrInsufficientPalette instead of padding.
	Strict bool
	// AccentOrder defaults to AccentOrderLuminance.
	AccentOrder AccentOrder
}

// Map maps colours onto a palette with the default Mapper.
func Map(colours []colour.RGB, variant Variant) (*Palette, error) {
	return Mapper{}.Map(colours, variant)
}

// Map sorts colours by luminance, trims or pads them to sixteen and assigns
// them to slots by rank. For dark palettes rank 0 is the darkest colour; for
// light palettes it is the lightest. The result depends only on the input.
func (m Mapper) Map(colours []colour.RGB, variant Variant) (*Palette, error) {
	if variant != VariantDark && variant != VariantLight {
		return nil, fmt.Errorf("cannot map variant %q: must be dark or light", variant)
	}
	if len(colours) == 0 {
		return nil, fmt.Errorf("%w: no colours", ErrInsufficientPalette)
	}
	if m.Strict && len(colours) < SlotCount {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientPalette, len(colours), SlotCount)
	}

	ranked := colour.SortByLuminance(colours)
	if variant == VariantLight {
		slices.Reverse(ranked)
	}

	padded := 0
	switch {
	case len(ranked) > SlotCount:
		ranked = spread(ranked)
	case len(ranked) < SlotCount:
		padded = SlotCount - len(ranked)
		ranked = pad(ranked)
	}

	if m.AccentOrder == AccentOrderHue {
		orderAccentsByHue(ranked[4:12])
	}

	p := &Palette{variant: variant, padded: padded}
	for rank, c := range ranked {
		p.colours[rankToSlot[rank]] = c
	}
	return p, nil
}

// spread picks sixteen colours at evenly spaced ranks, keeping both ends.
func spread(ranked []colour.RGB) []colour.RGB {
	n := len(ranked)
	out := make([]colour.RGB, SlotCount)
	for i := range out {
		// Rounded i*(n-1)/15 in integer arithmetic.
		idx := (2*i*(n-1) + SlotCount - 1) / (2 * (SlotCount - 1))
		out[i] = ranked[idx]
	}
	return out
}

// pad repeats the first and last colours alternately until there are
// sixteen. Copies of the first go before it and copies of the last after it,
// so the luminance order is preserved.
func pad(ranked []colour.RGB) []colour.RGB {
	missing := SlotCount - len(ranked)
	front := (missing + 1) / 2
	back := missing - front

	first, last := ranked[0], ranked[len(ranked)-1]
	out := make([]colour.RGB, 0, SlotCount)
	for range front {
		out = append(out, first)
	}
	out = append(out, ranked...)
	for range back {
		out = append(out, last)
	}
	return out
}

// minAccentSaturation separates chromatic accents from greys, whose hue is
// meaningless.
const minAccentSaturation = 0.1

// orderAccentsByHue permutes accents in place so each slot, in base08-base0F
// order, takes the remaining chromatic colour nearest its conventional hue.
// Ties go to the colour that comes first in rank order, i.e. the one nearer
// the background. Greys fill the slots left over, keeping their rank order.
func orderAccentsByHue(accents []colour.RGB) {
	var remaining, greys []colour.RGB
	for _, c := range accents {
		if _, sat := colour.Hue(c); sat < minAccentSaturation {
			greys = append(greys, c)
		} else {
			remaining = append(remaining, c)
		}
	}

	ordered := make([]colour.RGB, 0, len(accents))
	for _, target := range accentHues {
		if len(remaining) == 0 {
			break
		}
		best := 0
		bestDist := 361.0
		for j, c := range remaining {
			h, _ := colour.Hue(c)
			if d := colour.HueDistance(h, target); d < bestDist {
				best, bestDist = j, d
			}
		}
		ordered = append(ordered, remaining[best])
		remaining = slices.Delete(remaining, best, best+1)
	}
	ordered = append(ordered, greys...)
	copy(accents, ordered)
}
