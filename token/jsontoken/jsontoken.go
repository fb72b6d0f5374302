// Package jsontoken adapts goccy/go-json to the token Writer/Reader contract
package jsontoken

import (
	"bytes"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/KOMKZ/go-yogan-codec/token"
	"github.com/goccy/go-json"
)

// Writer appends JSON scalars to a buffer
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a writer over buf
func NewWriter(buf *bytes.Buffer) *Writer {
	return &Writer{buf: buf}
}

func (w *Writer) WriteNull() error {
	w.buf.WriteString("null")
	return nil
}

func (w *Writer) WriteString(s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}

func (w *Writer) WriteInt(i int64) error {
	w.buf.WriteString(strconv.FormatInt(i, 10))
	return nil
}

func (w *Writer) WriteUint(u uint64) error {
	w.buf.WriteString(strconv.FormatUint(u, 10))
	return nil
}

// Reader holds the first token of a JSON document
type Reader struct {
	kind  token.Kind
	value any
}

// NewReader decodes the first token of data. A scalar must be the whole document.
// Numbers keep their exact form: integers become int64, uint64 past MaxInt64, or *big.Int
// past both; the rest float64.
func NewReader(data []byte) (*Reader, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r, err := classify(tok)
	if err != nil {
		return nil, err
	}
	if r.kind == token.StartArray || r.kind == token.StartObject {
		return r, nil
	}

	off := min(int(dec.InputOffset()), len(data))
	if rest := bytes.Trim(data[off:], " \t\r\n"); len(rest) > 0 {
		return nil, token.ErrTrailingData.
			WithData("format", "json").
			WithData("offset", off)
	}
	return r, nil
}

func classify(tok json.Token) (*Reader, error) {
	switch v := tok.(type) {
	case nil:
		return &Reader{kind: token.Null}, nil
	case string:
		return &Reader{kind: token.String, value: v}, nil
	case bool:
		return &Reader{kind: token.Boolean, value: v}, nil
	case json.Number:
		return classifyNumber(v)
	case json.Delim:
		switch v {
		case '[':
			return &Reader{kind: token.StartArray}, nil
		case '{':
			return &Reader{kind: token.StartObject}, nil
		}
	}
	return &Reader{kind: token.Other, value: tok}, nil
}

func classifyNumber(n json.Number) (*Reader, error) {
	if i, err := n.Int64(); err == nil {
		return &Reader{kind: token.Integer, value: i}, nil
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return &Reader{kind: token.Integer, value: u}, nil
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		if b, ok := new(big.Int).SetString(n.String(), 10); ok {
			return &Reader{kind: token.Integer, value: b}, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return &Reader{kind: token.Float, value: f}, nil
}

// Kind implements token.Reader
func (r *Reader) Kind() token.Kind {
	return r.kind
}

// Value implements token.Reader
func (r *Reader) Value() any {
	return r.value
}
