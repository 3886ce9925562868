package codec

import "unsafe"

// uintptrOf returns the address of a slice's backing array, used to
// compute the padding alignedAlloc needs to satisfy a given alignment.
func uintptrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
