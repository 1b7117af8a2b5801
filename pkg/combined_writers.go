package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter duplicates writes to all its writers, similar to io.MultiWriter,
// but a failing writer does not stop the others. Used for log output, where the
// console should keep working when the log file is not writable.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.Writers = append(cw.Writers, w)
		}
	}
	return cw
}

// Write reports len(p) when at least one writer took the whole message,
// errors of all failed writers are combined.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	delivered := false
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr == nil && written < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		delivered = true
	}
	if delivered {
		return len(p), err
	}
	return 0, err
}
