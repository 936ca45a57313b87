package encryption

import (
	"sync"
)

const defaultBufferSize = 32 * 1024 // 32KB, a multiple of the cipher block size

// bufferPool provides a pool of reusable copy buffers for streaming file I/O.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, defaultBufferSize)

		return &buf
	},
}
