// Package gameid generates sortable identifiers for hands: a UUIDv7
// (48-bit millisecond timestamp plus random tail) rendered as 26
// characters of Crockford base32, so IDs order by creation time.
package gameid

import (
	"crypto/rand"
	"fmt"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail; injectable for deterministic
// tests. Nil means crypto/rand.
type RandSource interface {
	Intn(n int) int
}

// Generator produces hand IDs.
type Generator struct {
	src RandSource
}

// NewGenerator creates a generator. src may be nil for crypto/rand.
func NewGenerator(src RandSource) *Generator {
	return &Generator{src: src}
}

// New creates a hand ID using crypto/rand.
func New() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new hand ID.
func (g *Generator) Generate() string {
	var id [16]byte

	now := time.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(now >> (40 - 8*i))
	}

	if g.src != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.src.Intn(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("gameid: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return encode(id)
}

// encode renders 128 bits as 26 base32 characters, five bits at a time
// with the two low bits of the final character zero.
func encode(data [16]byte) string {
	out := make([]byte, 26)
	for i := range out {
		bit := i * 5
		idx := bit / 8
		off := bit % 8

		var v byte
		if off <= 3 {
			v = (data[idx] >> (3 - off)) & 0x1f
		} else {
			v = (data[idx] << (off - 3)) & 0x1f
			if idx+1 < 16 {
				v |= data[idx+1] >> (11 - off)
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that an ID is 26 valid base32 characters encoding at
// most 128 bits.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("hand ID must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		ok := false
		for j := 0; j < len(alphabet); j++ {
			if id[i] == alphabet[j] {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
