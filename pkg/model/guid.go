package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GlobalIDLength is the length of a compressed IFC GlobalId.
const GlobalIDLength = 22

// globalIDAlphabet is the IFC base-64 digit set (not RFC 4648).
const globalIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

// ErrInvalidGlobalID is returned for strings that are not IFC GlobalIds.
var ErrInvalidGlobalID = errors.New("invalid IFC GlobalId")

// ExpandGlobalID converts a 22-character IFC GlobalId into its UUID.
// The first two characters carry the leading byte, every following group of
// four carries three bytes.
func ExpandGlobalID(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if len(id) != GlobalIDLength {
		return u, fmt.Errorf("%w: %q has length %d", ErrInvalidGlobalID, id, len(id))
	}

	head, err := decodeDigits(id[:2])
	if err != nil || head > 0xFF {
		return u, fmt.Errorf("%w: %q", ErrInvalidGlobalID, id)
	}
	u[0] = byte(head)

	for i := 0; i < 5; i++ {
		v, err := decodeDigits(id[2+i*4 : 6+i*4])
		if err != nil {
			return u, fmt.Errorf("%w: %q", ErrInvalidGlobalID, id)
		}
		u[1+i*3] = byte(v >> 16)
		u[2+i*3] = byte(v >> 8)
		u[3+i*3] = byte(v)
	}

	return u, nil
}

// CompressGlobalID converts a UUID into its 22-character IFC GlobalId.
func CompressGlobalID(u uuid.UUID) string {
	var b strings.Builder
	b.Grow(GlobalIDLength)
	encodeDigits(&b, uint32(u[0]), 2)
	for i := 0; i < 5; i++ {
		v := uint32(u[1+i*3])<<16 | uint32(u[2+i*3])<<8 | uint32(u[3+i*3])
		encodeDigits(&b, v, 4)
	}
	return b.String()
}

func decodeDigits(s string) (uint32, error) {
	var v uint32
	for i := 0; i < len(s); i++ {
		d := strings.IndexByte(globalIDAlphabet, s[i])
		if d < 0 {
			return 0, ErrInvalidGlobalID
		}
		v = v<<6 | uint32(d)
	}
	return v, nil
}

func encodeDigits(b *strings.Builder, v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		b.WriteByte(globalIDAlphabet[(v>>(6*uint(i)))&0x3F])
	}
}
