package base16

// terminalColours lists the slot shown by each terminal colour index 0-21,
// following the base16-shell layout: 0-15 are the ANSI colours (bright
// variants repeat the normal accents) and 16-21 the extra 256-colour entries.
var terminalColours = [22]Slot{
	Base00, Base08, Base0B, Base0A, Base0D, Base0E, Base0C, Base05,
	Base03, Base08, Base0B, Base0A, Base0D, Base0E, Base0C, Base07,
	Base09, Base0F, Base01, Base02, Base04, Base06,
}

// slotTerminalIndex is the primary terminal index of each slot, as used for
// cterm values in base16-vim.
var slotTerminalIndex = [SlotCount]int{
	Base00: 0, Base01: 18, Base02: 19, Base03: 8,
	Base04: 20, Base05: 7, Base06: 21, Base07: 15,
	Base08: 1, Base09: 16, Base0A: 3, Base0B: 2,
	Base0C: 6, Base0D: 4, Base0E: 5, Base0F: 17,
}

// TerminalColours returns the slot for each terminal colour index 0-21.
func TerminalColours() []Slot {
	out := make([]Slot, len(terminalColours))
	copy(out, terminalColours[:])
	return out
}

// TerminalIndex returns the terminal colour index a slot is displayed as.
func (s Slot) TerminalIndex() int {
	return slotTerminalIndex[s]
}
