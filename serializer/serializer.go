// Package serializer is the byte-level entry point: it encodes values in a host format,
// routing the types a converter handles through the converter registry.
package serializer

import (
	"bytes"
	"reflect"

	"github.com/KOMKZ/go-yogan-codec/converter"
	"github.com/KOMKZ/go-yogan-codec/logger"
	"github.com/KOMKZ/go-yogan-codec/token"
	"github.com/KOMKZ/go-yogan-codec/token/jsontoken"
	"github.com/KOMKZ/go-yogan-codec/token/msgpacktoken"
	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// Format host wire format
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Serializer encodes and decodes single values.
// Values whose type a converter handles become one token; everything else uses the format's own codec.
type Serializer struct {
	format     Format
	converters *converter.Registry
	log        *logger.CtxZapLogger
}

// New creates a serializer. A nil logger discards output.
func New(format Format, converters *converter.Registry, log *logger.CtxZapLogger) (*Serializer, error) {
	switch format {
	case FormatJSON, FormatMsgpack:
	default:
		return nil, ErrUnsupportedFormat.WithData("format", string(format))
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Serializer{
		format:     format,
		converters: converters,
		log:        log,
	}, nil
}

// Name returns the format name
func (s *Serializer) Name() string {
	return string(s.format)
}

// Serialize encodes v
func (s *Serializer) Serialize(v any) ([]byte, error) {
	if v != nil && !s.converters.CanHandle(reflect.TypeOf(v)) {
		data, err := s.marshal(v)
		if err != nil {
			return nil, ErrSerialize.WithData("format", s.Name()).Wrap(err)
		}
		return data, nil
	}

	var buf bytes.Buffer
	if err := s.converters.Write(s.newWriter(&buf), v); err != nil {
		s.log.Debug("serialize failed",
			zap.String("format", s.Name()),
			zap.String("type", typeName(v)),
			zap.Error(err))
		return nil, ErrSerialize.WithData("format", s.Name()).Wrap(err)
	}
	return buf.Bytes(), nil
}

// Deserialize decodes data into out, which must be a non-nil pointer
func (s *Serializer) Deserialize(data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrDeserialize.
			WithMsg("deserialize target must be a non-nil pointer").
			WithData("target", typeName(out))
	}

	target := rv.Elem().Type()
	if !s.converters.CanHandle(target) {
		if err := s.unmarshal(data, out); err != nil {
			return ErrDeserialize.WithData("format", s.Name()).Wrap(err)
		}
		return nil
	}

	r, err := s.newReader(data)
	if err != nil {
		return ErrDeserialize.WithData("format", s.Name()).Wrap(err)
	}
	v, err := s.converters.Read(r, target)
	if err != nil {
		s.log.Debug("deserialize failed",
			zap.String("format", s.Name()),
			zap.Stringer("type", target),
			zap.Error(err))
		return ErrDeserialize.WithData("format", s.Name()).Wrap(err)
	}

	if v == nil {
		rv.Elem().Set(reflect.Zero(target))
	} else {
		rv.Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func (s *Serializer) newWriter(buf *bytes.Buffer) token.Writer {
	if s.format == FormatMsgpack {
		return msgpacktoken.NewWriter(buf)
	}
	return jsontoken.NewWriter(buf)
}

func (s *Serializer) newReader(data []byte) (token.Reader, error) {
	if s.format == FormatMsgpack {
		return msgpacktoken.NewReader(data)
	}
	return jsontoken.NewReader(data)
}

func (s *Serializer) marshal(v any) ([]byte, error) {
	if s.format == FormatMsgpack {
		return msgpack.Marshal(v)
	}
	return json.Marshal(v)
}

func (s *Serializer) unmarshal(data []byte, out any) error {
	if s.format == FormatMsgpack {
		return msgpack.Unmarshal(data, out)
	}
	return json.Unmarshal(data, out)
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
