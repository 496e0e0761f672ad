// Package iox provides a buffered io.WriteSeeker over an *os.File. The
// block writer (section.Writer) needs to seek backward to patch a length
// field and then resume writing at the point it left off; bufio.Writer
// alone doesn't support that since it has no notion of the underlying
// file's cursor. BufSeekWriter flushes its buffer before every Seek so the
// two stay consistent, giving callers buffered writes plus occasional
// seeks without juggling both themselves.
package iox

import (
	"bufio"
	"io"
	"os"
)

// BufSeekWriter wraps an *os.File with a bufio.Writer, flushing before any
// Seek so the file's cursor and the buffer never disagree.
type BufSeekWriter struct {
	f  *os.File
	bw *bufio.Writer
}

// NewBufSeekWriter wraps f with a buffer of the given size.
func NewBufSeekWriter(f *os.File, bufSize int) *BufSeekWriter {
	return &BufSeekWriter{f: f, bw: bufio.NewWriterSize(f, bufSize)}
}

// Write buffers p for output.
func (w *BufSeekWriter) Write(p []byte) (int, error) {
	return w.bw.Write(p)
}

// Seek flushes any buffered bytes, then seeks the underlying file.
func (w *BufSeekWriter) Seek(offset int64, whence int) (int64, error) {
	if err := w.bw.Flush(); err != nil {
		return 0, err
	}
	return w.f.Seek(offset, whence)
}

// Flush forces any buffered bytes out to the underlying file.
func (w *BufSeekWriter) Flush() error {
	return w.bw.Flush()
}

// Close flushes and closes the underlying file.
func (w *BufSeekWriter) Close() error {
	if err := w.bw.Flush(); err != nil {
		_ = w.f.Close()
		return err
	}
	return w.f.Close()
}

var _ io.WriteSeeker = (*BufSeekWriter)(nil)
