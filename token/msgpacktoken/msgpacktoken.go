// Package msgpacktoken adapts vmihailenco/msgpack to the token Writer/Reader contract
package msgpacktoken

import (
	"bytes"
	"errors"
	"io"

	"github.com/KOMKZ/go-yogan-codec/token"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Writer encodes scalars with the most compact msgpack representation
type Writer struct {
	enc *msgpack.Encoder
}

// NewWriter creates a writer over w
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: msgpack.NewEncoder(w)}
}

func (w *Writer) WriteNull() error {
	return w.enc.EncodeNil()
}

func (w *Writer) WriteString(s string) error {
	return w.enc.EncodeString(s)
}

func (w *Writer) WriteInt(i int64) error {
	return w.enc.EncodeInt(i)
}

func (w *Writer) WriteUint(u uint64) error {
	return w.enc.EncodeUint(u)
}

// Reader holds the first value of a msgpack document
type Reader struct {
	kind  token.Kind
	value any
}

// NewReader decodes the first value of data. Containers and binary values are classified, not decoded.
// A decoded scalar must be the whole document.
func NewReader(data []byte) (*Reader, error) {
	br := bytes.NewReader(data)
	dec := msgpack.NewDecoder(br)

	c, err := dec.PeekCode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	r, scalar, err := read(dec, c)
	if err != nil {
		return nil, err
	}
	if scalar && br.Len() > 0 {
		return nil, token.ErrTrailingData.
			WithData("format", "msgpack").
			WithData("offset", len(data)-br.Len())
	}
	return r, nil
}

// read decodes the value starting with code c; scalar reports whether it was consumed
func read(dec *msgpack.Decoder, c byte) (*Reader, bool, error) {
	switch {
	case c == msgpcode.Nil:
		return &Reader{kind: token.Null}, true, dec.DecodeNil()
	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		return &Reader{kind: token.String, value: s}, true, err
	case c == msgpcode.True || c == msgpcode.False:
		b, err := dec.DecodeBool()
		return &Reader{kind: token.Boolean, value: b}, true, err
	case c == msgpcode.Float || c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		return &Reader{kind: token.Float, value: f}, true, err
	case c == msgpcode.Uint64:
		u, err := dec.DecodeUint64()
		if err != nil {
			return nil, false, err
		}
		if u > 1<<63-1 {
			return &Reader{kind: token.Integer, value: u}, true, nil
		}
		return &Reader{kind: token.Integer, value: int64(u)}, true, nil
	case isInt(c):
		i, err := dec.DecodeInt64()
		return &Reader{kind: token.Integer, value: i}, true, err
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		return &Reader{kind: token.StartArray}, false, nil
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		return &Reader{kind: token.StartObject}, false, nil
	default:
		return &Reader{kind: token.Other}, false, nil
	}
}

func isInt(c byte) bool {
	if msgpcode.IsFixedNum(c) {
		return true
	}
	switch c {
	case msgpcode.Uint8, msgpcode.Uint16, msgpcode.Uint32,
		msgpcode.Int8, msgpcode.Int16, msgpcode.Int32, msgpcode.Int64:
		return true
	}
	return false
}

// Kind implements token.Reader
func (r *Reader) Kind() token.Kind {
	return r.kind
}

// Value implements token.Reader
func (r *Reader) Value() any {
	return r.value
}
