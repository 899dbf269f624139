package mesh

import (
	"fmt"
	"io"
)

// Logger is the advisory diagnostics sink of the extraction pipeline. A nil
// logger (or a nil writer) discards everything, so callers never have to
// guard their log calls.
type Logger struct {
	io.Writer
}

func (l *Logger) Infof(format string, a ...interface{}) {
	if l != nil && l.Writer != nil {
		fmt.Fprintf(l.Writer, "INFO: "+format+"\n", a...)
	}
}

func (l *Logger) Warnf(format string, a ...interface{}) {
	if l != nil && l.Writer != nil {
		fmt.Fprintf(l.Writer, "WARNING: "+format+"\n", a...)
	}
}
