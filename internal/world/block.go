package world

import "strconv"

// BlockType identifies the material of a voxel. Only the low 4 bits are stored.
type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeLightGrass
	BlockTypeWood
	BlockTypeLeaves
	BlockTypeLightLeaves

	// BlockTypeCount is the number of known block types.
	BlockTypeCount
)

// MaxHealth is the largest health value a cell can hold.
const MaxHealth = 15

var blockTypeNames = [BlockTypeCount]string{
	BlockTypeAir:         "air",
	BlockTypeGrass:       "grass",
	BlockTypeDirt:        "dirt",
	BlockTypeStone:       "stone",
	BlockTypeLightGrass:  "light_grass",
	BlockTypeWood:        "wood",
	BlockTypeLeaves:      "leaves",
	BlockTypeLightLeaves: "light_leaves",
}

// Valid reports whether t is one of the known block types.
func (t BlockType) Valid() bool {
	return t < BlockTypeCount
}

// IsSolid reports whether the block occupies its cell.
func (t BlockType) IsSolid() bool {
	return t != BlockTypeAir
}

func (t BlockType) String() string {
	if !t.Valid() {
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
	return blockTypeNames[t]
}

// Block is a packed cell: type in the low nibble, health in the high nibble.
type Block uint8

// NewBlock packs a type and a health value. Both are truncated to 4 bits.
func NewBlock(t BlockType, health uint8) Block {
	return Block(uint8(t)&0x0F | (health&0x0F)<<4)
}

// Type returns the block type stored in the cell.
func (b Block) Type() BlockType {
	return BlockType(b & 0x0F)
}

// Health returns the 0..15 health value stored in the cell.
func (b Block) Health() uint8 {
	return uint8(b) >> 4
}
