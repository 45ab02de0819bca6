package mask

import (
	"errors"
	"fmt"
)

// ErrBufferSize is returned when a destination buffer is too small.
var ErrBufferSize = errors.New("vbg: mask buffer too small")

// Expand broadcasts a single-channel mask into opaque RGBA.
// For every pixel i of src, dst[4i], dst[4i+1] and dst[4i+2] are set to
// src[i] and dst[4i+3] to 255. dst must hold at least 4*len(src) bytes.
func Expand(dst, src []byte) error {
	if len(dst) < len(src)*4 {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferSize, len(src)*4, len(dst))
	}
	dst = dst[:len(src)*4]
	for i, v := range src {
		p := dst[i*4 : i*4+4 : i*4+4]
		p[0] = v
		p[1] = v
		p[2] = v
		p[3] = 255
	}
	return nil
}
