package vm

// Block is an ordered sequence of instructions within a Fragment. A
// block can be cleared without destroying the fragment that owns it.
type Block struct {
	instructions []Instruction
}

// Len returns the number of instructions currently in the block.
func (b *Block) Len() int { return len(b.instructions) }

// At returns the instruction at index i.
func (b *Block) At(i int) Instruction { return b.instructions[i] }

func (b *Block) append(in Instruction) {
	b.instructions = append(b.instructions, in)
}

func (b *Block) clear() {
	b.instructions = b.instructions[:0]
}
