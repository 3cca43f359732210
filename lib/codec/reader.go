package codec

import (
	"encoding/binary"

	"github.com/hexforge/fieldstate/lib/state"
)

// --------------------------------------------------------------------------
// Read Cursor
// --------------------------------------------------------------------------

// reader is a position cursor over one contiguous input buffer. Every read
// is bounds-checked first; running past the end of the input is a hard
// failure, never a partial result.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

// need fails when fewer than n bytes remain.
func (r *reader) need(n int, what string) error {
	if r.pos+n > len(r.data) {
		return state.NewError(state.ErrCMalformedHeader,
			"unexpected end of input: need %d byte(s) for %s at offset %d", n, what, r.pos)
	}
	return nil
}

func (r *reader) readByte(what string) (byte, error) {
	if err := r.need(1, what); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readUint16(what string) (uint16, error) {
	if err := r.need(2, what); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}

func (r *reader) readUint32(what string) (uint32, error) {
	if err := r.need(4, what); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *reader) readUint64(what string) (uint64, error) {
	if err := r.need(8, what); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

// readString reads a 4-byte length followed by that many raw bytes.
func (r *reader) readString(what string) (string, error) {
	n, err := r.readUint32(what)
	if err != nil {
		return "", err
	}
	if err := r.need(int(n), what); err != nil {
		return "", err
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

// remaining returns the number of unconsumed bytes.
func (r *reader) remaining() int {
	return len(r.data) - r.pos
}
