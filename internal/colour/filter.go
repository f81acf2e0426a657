package colour

import (
	"math"
	"slices"
)

// maxLabDistance bounds the Lab distance search; black to white is ~1.0.
const maxLabDistance = 1.5

// distinctSearchIterations caps the binary search in SelectDistinct.
const distinctSearchIterations = 50

// Dominant returns the highest-weighted colour of the palette, or the first
// colour when the palette carries no weights. ok is false for an empty palette.
func Dominant(p *Palette) (rgb RGB, ok bool) {
	if p == nil || len(p.Colors) == 0 {
		return RGB{}, false
	}
	best := 0
	for i := range p.Colors {
		if i < len(p.Weights) && p.Weights[i] > p.Weights[best] {
			best = i
		}
	}
	return ToRGB(p.Colors[best]), true
}

// IsDark reports whether a colour reads as a dark background (mean channel
// value below the midpoint).
func IsDark(rgb RGB) bool {
	return Brightness(rgb) < 255.0/2
}

// FilterBand keeps the colours whose brightness lies inside the band for the
// given intensity (1-100). Dark themes keep [255*(1-i/100), 255], light themes
// keep [0, 255*i/100]; intensity 100 keeps everything. If nothing survives the
// input is returned unchanged.
func FilterBand(colours []RGB, dark bool, intensity int) []RGB {
	if intensity >= 100 || intensity <= 0 {
		return colours
	}

	frac := float64(intensity) / 100.0
	lower, upper := 0.0, 255.0
	if dark {
		lower = 255.0 * (1 - frac)
	} else {
		upper = 255.0 * frac
	}

	kept := make([]RGB, 0, len(colours))
	for _, c := range colours {
		if b := Brightness(c); b >= lower && b <= upper {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return colours
	}
	return kept
}

// FilterBandAround is FilterBand for a variant inferred from the image: the
// band is anchored at the background's brightness instead of the end of the
// range. Dark themes keep [background, 255*i/100], light themes keep
// [255*(1-i/100), background]. If nothing survives the input is returned.
func FilterBandAround(colours []RGB, background RGB, dark bool, intensity int) []RGB {
	frac := float64(min(max(intensity, 1), 100)) / 100.0
	bg := Brightness(background)
	lower, upper := bg, 255.0*frac
	if !dark {
		lower, upper = 255.0*(1-frac), bg
	}

	kept := make([]RGB, 0, len(colours))
	for _, c := range colours {
		if b := Brightness(c); b >= lower && b <= upper {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return colours
	}
	return kept
}

// SelectDistinct picks up to target colours that are as far apart as possible.
// It binary-searches a minimum Lab distance so that greedy selection, starting
// from the background end of the luminance order, yields target colours.
// Besides being distinct from each other, colours must differ in brightness
// from the background; see backgroundGap.
// When no threshold hits target exactly, the closest larger selection wins,
// falling back to the largest smaller one.
func SelectDistinct(colours []RGB, target int, dark bool) []RGB {
	ordered := SortByLuminance(colours)
	if !dark {
		slices.Reverse(ordered)
	}
	ordered = dedupe(ordered)

	if target <= 0 || len(ordered) <= target {
		return ordered
	}

	var over, under []RGB
	lo, hi := 0.0, maxLabDistance
	for range distinctSearchIterations {
		mid := (lo + hi) / 2
		candidates := greedyDistinct(ordered, mid)
		switch n := len(candidates); {
		case n == target:
			return candidates
		case n > target:
			if over == nil || n < len(over) {
				over = candidates
			}
			lo = mid
		default:
			if n > len(under) {
				under = candidates
			}
			hi = mid
		}
	}

	if over != nil {
		return over
	}
	return under
}

// backgroundGap is the brightness difference (0-255) a colour needs from the
// background at a given Lab threshold. With s = 1 - minDistance/maxLabDistance
// as a similarity, the gap is 255*(1-s^4).
func backgroundGap(minDistance float64) float64 {
	s := 1 - minDistance/maxLabDistance
	return 255 * (1 - s*s*s*s)
}

// greedyDistinct takes ordered[0] as the background and keeps each later
// colour that is at least minDistance (Lab) away from every colour kept
// before it and far enough from the background in brightness.
func greedyDistinct(ordered []RGB, minDistance float64) []RGB {
	chosen := make([]RGB, 0, len(ordered))
	if len(ordered) == 0 {
		return chosen
	}
	bg, gap := Brightness(ordered[0]), backgroundGap(minDistance)
	for i, c := range ordered {
		if i > 0 && math.Abs(Brightness(c)-bg) < gap {
			continue
		}
		cc := c.Colorful()
		keep := true
		for _, prev := range chosen {
			if cc.DistanceLab(prev.Colorful()) < minDistance {
				keep = false
				break
			}
		}
		if keep {
			chosen = append(chosen, c)
		}
	}
	return chosen
}

func dedupe(colours []RGB) []RGB {
	seen := make(map[RGB]bool, len(colours))
	out := make([]RGB, 0, len(colours))
	for _, c := range colours {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
