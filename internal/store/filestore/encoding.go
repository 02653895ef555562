package filestore

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Records are positional: every field sits at a fixed offset, strings are
// NUL-terminated inside fixed-width slots, numbers are little-endian.
var byteOrder = binary.LittleEndian

// errFieldOverflow reports a value that cannot fit its record slot. Values
// are validated at the domain boundary, so hitting this means a codec width
// and a domain budget have drifted apart.
var errFieldOverflow = fmt.Errorf("field value exceeds record slot")

// putFixedString writes value into a fixed-width slot, zero-filling the
// remainder so the field is always NUL-terminated. The slot must keep at
// least one byte for the terminator.
func putFixedString(slot []byte, value string) error {
	if len(value) >= len(slot) {
		return fmt.Errorf("%w: %q in %d bytes", errFieldOverflow, value, len(slot))
	}
	for index := range slot {
		slot[index] = 0
	}
	copy(slot, value)
	return nil
}

// fixedString reads a NUL-terminated string out of a fixed-width slot.
func fixedString(slot []byte) string {
	for index, value := range slot {
		if value == 0 {
			return string(slot[:index])
		}
	}
	return string(slot)
}

func putFloat32(slot []byte, value float64) {
	byteOrder.PutUint32(slot, math.Float32bits(float32(value)))
}

func float32At(slot []byte) float64 {
	return float64(math.Float32frombits(byteOrder.Uint32(slot)))
}

func putInt32(slot []byte, value int) {
	byteOrder.PutUint32(slot, uint32(int32(value)))
}

func int32At(slot []byte) int {
	return int(int32(byteOrder.Uint32(slot)))
}

func putBool(slot []byte, value bool) {
	if value {
		slot[0] = 1
	} else {
		slot[0] = 0
	}
}

func boolAt(slot []byte) bool {
	return slot[0] != 0
}
