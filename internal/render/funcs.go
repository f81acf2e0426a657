package render

import (
	"fmt"
	"strings"
	"text/template"
)

// TemplateFuncs returns the functions available to every template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Slot formatting.
		"hex":        hexFunc,
		"hexNoHash":  hexNoHashFunc,
		"rgb":        rgbFunc,
		"rgbDecimal": rgbDecimalFunc,
		"rgbSpaces":  rgbSpacesFunc,

		// String manipulation (pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"trimSuffix": trimSuffixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// hexFunc returns a slot colour in lower-case #rrggbb format.
func hexFunc(sd SlotData) string {
	return strings.ToLower(sd.Hash)
}

// hexNoHashFunc returns a slot colour in lower-case rrggbb format.
func hexNoHashFunc(sd SlotData) string {
	return strings.ToLower(sd.Hex)
}

// rgbFunc returns a slot colour as rgb(r, g, b).
func rgbFunc(sd SlotData) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", sd.R, sd.G, sd.B)
}

// rgbDecimalFunc returns 0-1 components, e.g. "0.118 0.118 0.180".
func rgbDecimalFunc(sd SlotData) string {
	return fmt.Sprintf("%.3f %.3f %.3f", float64(sd.R)/255, float64(sd.G)/255, float64(sd.B)/255)
}

// rgbSpacesFunc returns "r g b" with 0-255 components.
func rgbSpacesFunc(sd SlotData) string {
	return fmt.Sprintf("%d %d %d", sd.R, sd.G, sd.B)
}

// trimPrefixFunc is strings.TrimPrefix with the input last, for pipelines.
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// trimSuffixFunc is strings.TrimSuffix with the input last, for pipelines.
func trimSuffixFunc(suffix, s string) string {
	return strings.TrimSuffix(s, suffix)
}

// replaceFunc is strings.ReplaceAll with the input last, for pipelines.
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
