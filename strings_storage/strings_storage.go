/*
 Line suppliers and consumers for rendered Gerber code
*/

package strings_storage

import (
	"io"
	"strings"
)

// Supplier hands out lines one by one from its read position
type Supplier interface {
	String() string
	Len() int
	ResetPos()
	PeekPos() int
}

type Consumer interface {
	Accept(string)
}

// Storage keeps the accepted lines in order and hands them out one by one
type Storage struct {
	index   int
	strings []string
}

func NewStorage() *Storage {
	retVal := new(Storage)
	retVal.strings = make([]string, 0)
	return retVal
}

// String returns the next line, "" when all lines were read
func (storage *Storage) String() string {
	if storage.index == len(storage.strings) {
		return ""
	}
	index := storage.index
	storage.index++
	return storage.strings[index]
}

// empty strings are discarded
func (storage *Storage) Accept(s string) {
	if len(s) > 0 {
		storage.strings = append(storage.strings, s)
	}
}

func (storage *Storage) Len() int {
	return len(storage.strings)
}

func (storage *Storage) ResetPos() {
	storage.index = 0
}

func (storage *Storage) PeekPos() int {
	return storage.index
}

func (storage *Storage) ToArray() []string {
	return append(make([]string, 0, len(storage.strings)), storage.strings...)
}

// Join returns all lines separated by sep, the read position is not used
func (storage *Storage) Join(sep string) string {
	return strings.Join(storage.strings, sep)
}

// Copy passes all lines of src to dst starting from the first one and
// returns the number of lines passed
func Copy(dst Consumer, src Supplier) int {
	src.ResetPos()
	n := 0
	for src.PeekPos() < src.Len() {
		dst.Accept(src.String())
		n++
	}
	return n
}

// WriterConsumer writes the accepted lines to w, separated by sep.
// The first write error stops the output and is kept.
type WriterConsumer struct {
	w     io.Writer
	sep   string
	lines int
	err   error
}

func NewWriterConsumer(w io.Writer, sep string) *WriterConsumer {
	return &WriterConsumer{w: w, sep: sep}
}

func (wc *WriterConsumer) Accept(s string) {
	if wc.err != nil || len(s) == 0 {
		return
	}
	if wc.lines > 0 {
		s = wc.sep + s
	}
	if _, err := io.WriteString(wc.w, s); err != nil {
		wc.err = err
		return
	}
	wc.lines++
}

// Lines returns the number of lines written
func (wc *WriterConsumer) Lines() int {
	return wc.lines
}

func (wc *WriterConsumer) Err() error {
	return wc.err
}
