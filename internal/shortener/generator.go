package shortener

import (
	"fmt"
	"math/rand"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the symbol set short codes are drawn from.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Short code length bounds, inclusive.
const (
	MinCodeLength = 2
	MaxCodeLength = 9
)

// CodeGenerator produces short codes. It does not guarantee uniqueness;
// the Repository's unique constraint does, with the write path retrying
// on collision.
type CodeGenerator func() string

// Generator produces codes with length uniform in [MinCodeLength,
// MaxCodeLength] and each character uniform over Alphabet.
type Generator struct {
	byLength []func() string
}

// NewGenerator creates a variable-length code generator.
func NewGenerator() (*Generator, error) {
	byLength := make([]func() string, 0, MaxCodeLength-MinCodeLength+1)

	for length := MinCodeLength; length <= MaxCodeLength; length++ {
		gen, err := nanoid.CustomASCII(Alphabet, length)
		if err != nil {
			return nil, fmt.Errorf("code generator for length %d: %w", length, err)
		}

		byLength = append(byLength, gen)
	}

	return &Generator{byLength: byLength}, nil
}

// Generate returns a new short code.
func (g *Generator) Generate() string {
	return g.byLength[rand.Intn(len(g.byLength))]()
}
