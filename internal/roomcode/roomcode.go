// Package roomcode mints the 6-digit codes users exchange to join a room.
package roomcode

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	Length = 6
	space  = 1000000

	// Values at or above limit are rejected so every code is equally likely.
	limit = (1 << 32) / space * space
)

// Generator draws codes uniformly from 000000-999999. It does not guarantee
// uniqueness; callers resolve collisions against the room store.
type Generator struct {
	source io.Reader
}

func NewGenerator(source io.Reader) *Generator {
	if source == nil {
		source = rand.Reader
	}
	return &Generator{source: source}
}

func (g *Generator) Generate() (string, error) {
	var buf [4]byte
	for {
		if _, err := io.ReadFull(g.source, buf[:]); err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		n := uint64(binary.BigEndian.Uint32(buf[:]))
		if n < limit {
			return fmt.Sprintf("%06d", n%space), nil
		}
	}
}

// Valid reports whether code is exactly six ASCII digits.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
