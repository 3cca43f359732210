package codec

import (
	"encoding/binary"
)

// --------------------------------------------------------------------------
// Write Cursor
// --------------------------------------------------------------------------

// writer is an append-only byte buffer with big-endian put helpers. Unlike
// a fixed pre-sized buffer, appending keeps recursion into nested state
// objects simple: their encoded size is not known up front.
type writer struct {
	buf []byte
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, 64)}
}

func (w *writer) putByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) putUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *writer) putUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *writer) putUint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

// putString writes a 4-byte length followed by the raw string bytes.
func (w *writer) putString(s string) {
	w.putUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) bytes() []byte {
	return w.buf
}
