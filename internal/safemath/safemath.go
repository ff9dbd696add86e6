package safemath

import (
	"errors"
	"math/bits"
)

var (
	ErrOverflow  = errors.New("number overflow")
	ErrUnderflow = errors.New("number underflow")
)

func Add8(a, b uint8) (uint8, bool) {
	v := a + b
	return v, v >= a
}

func Add32(a, b uint32) (uint32, bool) {
	v, carry := bits.Add32(a, b, 0)
	return v, carry == 0
}

func Add64(a, b uint64) (uint64, bool) {
	v, carry := bits.Add64(a, b, 0)
	return v, carry == 0
}

func Sub32(a, b uint32) (uint32, bool) {
	v, carry := bits.Sub32(a, b, 0)
	return v, carry == 0
}

func Sub64(a, b uint64) (uint64, bool) {
	v, carry := bits.Sub64(a, b, 0)
	return v, carry == 0
}

// Div64 is floor division, it reports false for a zero divisor.
func Div64(a, b uint64) (uint64, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}
