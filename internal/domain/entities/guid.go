package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// guidChars is the 64-character alphabet IFC uses for compressed GlobalIds.
const guidChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

var guidIndex = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(guidChars); i++ {
		idx[guidChars[i]] = int8(i)
	}
	return idx
}()

// NewGlobalID returns a fresh 22-character IFC GlobalId.
func NewGlobalID() string {
	return CompressGUID(uuid.New())
}

// CompressGUID encodes a UUID as a 22-character IFC GlobalId: the first
// byte as two base64 digits, then five groups of three bytes as four
// digits each.
func CompressGUID(id uuid.UUID) string {
	out := make([]byte, 0, 22)
	encode := func(v uint32, n int) {
		group := make([]byte, n)
		for i := n - 1; i >= 0; i-- {
			group[i] = guidChars[v%64]
			v /= 64
		}
		out = append(out, group...)
	}
	encode(uint32(id[0]), 2)
	for i := 1; i < 16; i += 3 {
		encode(uint32(id[i])<<16|uint32(id[i+1])<<8|uint32(id[i+2]), 4)
	}
	return string(out)
}

// ExpandGUID decodes a 22-character IFC GlobalId back into a UUID.
func ExpandGUID(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if len(s) != 22 {
		return id, fmt.Errorf("global id must be 22 characters, got %d", len(s))
	}
	decode := func(part string) (uint32, error) {
		var v uint32
		for i := 0; i < len(part); i++ {
			d := guidIndex[part[i]]
			if d < 0 {
				return 0, fmt.Errorf("invalid global id character %q", part[i])
			}
			v = v*64 + uint32(d)
		}
		return v, nil
	}
	v, err := decode(s[:2])
	if err != nil {
		return id, err
	}
	if v > 0xff {
		return id, fmt.Errorf("global id %q overflows its leading byte", s)
	}
	id[0] = byte(v)
	for i := 0; i < 5; i++ {
		v, err := decode(s[2+i*4 : 6+i*4])
		if err != nil {
			return id, err
		}
		id[1+i*3] = byte(v >> 16)
		id[2+i*3] = byte(v >> 8)
		id[3+i*3] = byte(v)
	}
	return id, nil
}
