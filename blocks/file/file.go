// Package file provides blocks moving streams in and out of binary
// files. Files hold raw element bytes with no framing; the dtype is
// configuration, not payload.
package file

import (
	"io"
	"os"
	"sync"

	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// Source streams the contents of a binary file, element by element, and
// idles at end of file. Activate opens the file and Deactivate closes it;
// the mutex covers the handle against lifecycle calls racing a work loop.
type Source struct {
	block.Base
	path   string
	repeat bool

	mu    sync.Mutex
	file  *os.File
	done  bool
	carry []byte
}

// NewSource creates a file source for the given dtype. With repeat set the
// source rewinds at end of file instead of idling.
func NewSource(dt dtype.DType, path string, repeat bool) (*Source, error) {
	if path == "" {
		return nil, errors.InvalidArgumentf("file.Source", "NewSource", "path is empty")
	}
	b := &Source{Base: block.NewBase("file_source"), path: path, repeat: repeat}
	b.SetupOutput(0, dt)
	return b, nil
}

// Activate opens the file.
func (b *Source) Activate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file != nil {
		return nil
	}
	f, err := os.Open(b.path)
	if err != nil {
		return errors.Wrap(err, "file.Source", "Activate", "open "+b.path)
	}
	b.file = f
	b.done = false
	b.carry = b.carry[:0]
	return nil
}

// Deactivate closes the file.
func (b *Source) Deactivate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	if err != nil {
		return errors.Wrap(err, "file.Source", "Deactivate", "close "+b.path)
	}
	return nil
}

// Done reports whether the source has reached end of file.
func (b *Source) Done() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}

func (b *Source) Work() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file == nil || b.done {
		return
	}

	out := b.Output(0)
	elems := out.Elements()
	if elems == 0 {
		return
	}
	elemSize := out.DType().ElemSize()
	dst := out.Buffer().Bytes()[:elems*elemSize]

	// Bytes of a partial element from the previous read lead the buffer
	// so element boundaries stay aligned across short reads.
	total := copy(dst, b.carry)
	var err error
	for {
		var n int
		n, err = b.file.Read(dst[total:])
		total += n
		if err != nil || total == len(dst) || total%elemSize == 0 {
			break
		}
	}
	if whole := total / elemSize; whole > 0 {
		out.Produce(whole)
		b.carry = append(b.carry[:0], dst[whole*elemSize:total]...)
	} else {
		b.carry = append(b.carry[:0], dst[:total]...)
	}
	switch {
	case err == io.EOF:
		if len(b.carry) > 0 {
			b.Logger().Warn("file source discarding trailing partial element",
				"path", b.path, "bytes", len(b.carry))
			b.carry = b.carry[:0]
		}
		if b.repeat {
			if _, serr := b.file.Seek(0, io.SeekStart); serr != nil {
				b.Logger().Error("file source rewind failed", "path", b.path, "error", serr)
				b.done = true
			}
			return
		}
		b.done = true
	case err != nil:
		b.Logger().Error("file source read failed", "path", b.path, "error", err)
		b.done = true
	}
}

// Sink appends every element it receives to a binary file.
type Sink struct {
	block.Base
	path string

	mu   sync.Mutex
	file *os.File
}

// NewSink creates a file sink for the given dtype, truncating any
// existing file on activation.
func NewSink(dt dtype.DType, path string) (*Sink, error) {
	if path == "" {
		return nil, errors.InvalidArgumentf("file.Sink", "NewSink", "path is empty")
	}
	b := &Sink{Base: block.NewBase("file_sink"), path: path}
	b.SetupInput(0, dt)
	return b, nil
}

// Activate opens the file for writing.
func (b *Sink) Activate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file != nil {
		return nil
	}
	f, err := os.Create(b.path)
	if err != nil {
		return errors.Wrap(err, "file.Sink", "Activate", "create "+b.path)
	}
	b.file = f
	return nil
}

// Deactivate flushes and closes the file.
func (b *Sink) Deactivate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	if err != nil {
		return errors.Wrap(err, "file.Sink", "Deactivate", "close "+b.path)
	}
	return nil
}

func (b *Sink) Work() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.file == nil {
		return
	}

	in := b.Input(0)
	elems := in.Elements()
	if elems == 0 {
		return
	}
	data := in.Buffer().Bytes()[:elems*in.DType().ElemSize()]
	if _, err := b.file.Write(data); err != nil {
		b.Logger().Error("file sink write failed", "path", b.path, "error", err)
		return
	}
	in.Consume(elems)
}
