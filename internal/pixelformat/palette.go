package pixelformat

// Palette256 holds up to 256 colors in the canonical 0xAARRGGBB
// representation, indexed by a raw palette byte. It backs Index8 reads and
// the optional palette argument ConvertColor carries for parity with the
// collaborator interface described in spec §6.
type Palette256 struct {
	Entries [256]uint32
	Count   int
}

// Set stores color at the given index, growing Count if needed.
func (p *Palette256) Set(index byte, color uint32) {
	p.Entries[index] = color
	if int(index)+1 > p.Count {
		p.Count = int(index) + 1
	}
}

// At returns the color stored at index, or 0 if index was never Set.
func (p *Palette256) At(index byte) uint32 {
	return p.Entries[index]
}
