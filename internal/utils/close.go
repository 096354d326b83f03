package utils

import (
	"io"
)

// drainLimit caps how much of an unread body is discarded before closing,
// enough to let the transport reuse the connection for small leftovers.
const drainLimit = 4 << 10

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// DrainClose discards what is left of an HTTP response body and closes it.
func DrainClose(rc io.ReadCloser) {
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, drainLimit))
	_ = rc.Close()
}
