package render

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/base16gen/internal/base16"
	"github.com/jmylchreest/base16gen/internal/version"
)

// SlotData is one slot as seen by templates.
type SlotData struct {
	Name  string // "base0A"
	Index string // "0A"
	Hex   string // "RRGGBB", upper case
	Hash  string // "#RRGGBB"
	Shell string // "RR/GG/BB", as used by base16-shell
	Term  string // terminal colour index, two digits
	R     uint8
	G     uint8
	B     uint8
}

// TerminalData is one terminal colour index (0-21) and the slot it shows.
type TerminalData struct {
	SlotData
	Number  string // "00".."21"
	Decimal int
}

// ThemeData is the value passed to every template.
type ThemeData struct {
	Name      string
	Variant   string
	Generator string
	Padded    int

	// Slots holds the sixteen slots in base16 order.
	Slots []SlotData
	// Slot gives access by name, e.g. {{ .Slot.base0D.Hex }}.
	Slot map[string]SlotData
	// Terminal holds terminal colours 0-21 in the base16-shell layout.
	Terminal []TerminalData
}

// NewThemeData builds template data for a palette and theme name.
func NewThemeData(p *base16.Palette, name string) *ThemeData {
	data := &ThemeData{
		Name:      name,
		Variant:   string(p.Variant()),
		Generator: "base16gen " + version.Version,
		Padded:    p.Padded(),
		Slots:     make([]SlotData, 0, base16.SlotCount),
		Slot:      make(map[string]SlotData, base16.SlotCount),
	}

	for s, c := range p.All() {
		hex := strings.ToUpper(strings.TrimPrefix(c.Hex(), "#"))
		sd := SlotData{
			Name:  s.String(),
			Index: s.Index(),
			Hex:   hex,
			Hash:  "#" + hex,
			Shell: hex[0:2] + "/" + hex[2:4] + "/" + hex[4:6],
			Term:  fmt.Sprintf("%02d", s.TerminalIndex()),
			R:     c.R,
			G:     c.G,
			B:     c.B,
		}
		data.Slots = append(data.Slots, sd)
		data.Slot[sd.Name] = sd
	}

	for i, s := range base16.TerminalColours() {
		data.Terminal = append(data.Terminal, TerminalData{
			SlotData: data.Slots[s],
			Number:   fmt.Sprintf("%02d", i),
			Decimal:  i,
		})
	}

	return data
}
