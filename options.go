package fst

import "github.com/ekiwi/fst-writer/internal/options"

// config holds Open's resolved settings after every Option has been
// applied.
type config struct {
	autoFlushBytes     int
	bufferedWriterSize int
	hierarchyNameLimit int
}

func defaultConfig() config {
	return config{
		autoFlushBytes:     0,     // disabled: caller drives Flush explicitly
		bufferedWriterSize: 64 * 1024,
		hierarchyNameLimit: 0, // 0: hierarchy.NewBuffer falls back to the format default
	}
}

// Option configures Open. See WithAutoFlushBytes, WithBufferedWriterSize,
// and WithHierarchyNameLimit.
type Option = options.Option[*config]

// WithAutoFlushBytes makes the body writer flush its current
// value-change section automatically once BodyWriter.Size() reaches n
// bytes, trading section count for peak memory (spec §5's "performance
// knob"). n <= 0 disables auto-flush (the default): the caller must call
// Flush explicitly.
func WithAutoFlushBytes(n int) Option {
	return options.NoError(func(c *config) { c.autoFlushBytes = n })
}

// WithBufferedWriterSize sets the buffer size of the bufio.Writer wrapping
// the output file.
func WithBufferedWriterSize(n int) Option {
	return options.NoError(func(c *config) {
		if n > 0 {
			c.bufferedWriterSize = n
		}
	})
}

// WithHierarchyNameLimit overrides the maximum scope/var name length
// (spec §4.3 defaults to section.MaxHierarchyNameLength). Intended for
// tests that want to exercise the ErrNameTooLong path without 512-byte
// names.
func WithHierarchyNameLimit(n int) Option {
	return options.NoError(func(c *config) { c.hierarchyNameLimit = n })
}
