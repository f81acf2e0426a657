package colour

import (
	"image/color"
	"math"
	"sort"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	// Convert from 16-bit to 8-bit.
	rf := float64(r>>8) / 255.0
	rg := float64(g>>8) / 255.0
	rb := float64(b>>8) / 255.0

	rf = gammaCorrect(rf)
	rg = gammaCorrect(rg)
	rb = gammaCorrect(rb)

	return 0.2126*rf + 0.7152*rg + 0.0722*rb
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 color.Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// Brightness returns the mean of the three 8-bit channels (0-255).
func Brightness(rgb RGB) float64 {
	return (float64(rgb.R) + float64(rgb.G) + float64(rgb.B)) / 3.0
}

// Hue returns the HSV hue of a colour in degrees (0-360) and its saturation (0-1).
func Hue(rgb RGB) (hue, saturation float64) {
	h, s, _ := rgb.Colorful().Hsv()
	return h, s
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// SortByLuminance returns a copy of colours ordered from darkest to lightest.
// Equal luminance falls back to the hex value so the order is total.
func SortByLuminance(colours []RGB) []RGB {
	sorted := make([]RGB, len(colours))
	copy(sorted, colours)
	sort.SliceStable(sorted, func(i, j int) bool {
		li, lj := Luminance(sorted[i]), Luminance(sorted[j])
		if li != lj {
			return li < lj
		}
		return sorted[i].Hex() < sorted[j].Hex()
	})
	return sorted
}
