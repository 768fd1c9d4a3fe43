package ws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrEmptyPayload = errors.New("ws: empty payload")
	ErrUnknownCodec = errors.New("ws: unknown codec")
)

// Codec is the wire encoding of a socket. JSON travels in text frames and
// msgpack in binary frames.
type Codec string

const (
	CodecJSON    Codec = "json"
	CodecMsgpack Codec = "msgpack"
)

// Message types carried in the envelope.
const (
	MsgFrame  = "frame"
	MsgStatus = "status"
	MsgDraw   = "draw"
	MsgEvent  = "event"
	MsgHello  = "hello"
	MsgError  = "error"
)

// ParseCodec maps a query value to a Codec. Empty means JSON.
func ParseCodec(s string) (Codec, error) {
	switch Codec(s) {
	case "", CodecJSON:
		return CodecJSON, nil
	case CodecMsgpack:
		return CodecMsgpack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCodec, s)
}

// codecFor picks the codec of an incoming websocket frame.
func codecFor(messageType int) Codec {
	if messageType == websocket.BinaryMessage {
		return CodecMsgpack
	}
	return CodecJSON
}

func (c Codec) messageType() int {
	if c == CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

type jsonEnvelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

type msgpackEnvelope struct {
	T string             `json:"t" msgpack:"t"`
	P msgpack.RawMessage `json:"p" msgpack:"p"`
}

// Encode wraps payload in a {t, p} envelope.
func (c Codec) Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode envelope: empty type")
	}
	switch c {
	case CodecJSON:
		p, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return json.Marshal(jsonEnvelope{T: t, P: p})
	case CodecMsgpack:
		p, err := marshalMsgpack(payload)
		if err != nil {
			return nil, err
		}
		return marshalMsgpack(msgpackEnvelope{T: t, P: p})
	}
	return nil, ErrUnknownCodec
}

// Message is a decoded envelope whose payload is decoded on demand.
type Message struct {
	Type  string
	codec Codec
	raw   []byte
}

// Decode reads the envelope. The payload is left for Message.Decode.
func (c Codec) Decode(data []byte) (Message, error) {
	if len(data) == 0 {
		return Message{}, ErrEmptyPayload
	}
	switch c {
	case CodecJSON:
		var env jsonEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return Message{}, fmt.Errorf("decode envelope: %w", err)
		}
		return Message{Type: env.T, codec: c, raw: env.P}, nil
	case CodecMsgpack:
		var env msgpackEnvelope
		if err := unmarshalMsgpack(data, &env); err != nil {
			return Message{}, fmt.Errorf("decode envelope: %w", err)
		}
		return Message{Type: env.T, codec: c, raw: env.P}, nil
	}
	return Message{}, ErrUnknownCodec
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if len(m.raw) == 0 {
		return fmt.Errorf("%w for type %q", ErrEmptyPayload, m.Type)
	}
	if m.codec == CodecMsgpack {
		return unmarshalMsgpack(m.raw, v)
	}
	return json.Unmarshal(m.raw, v)
}

// msgpack shares the json struct tags so game types need one set of tags.
func marshalMsgpack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalMsgpack(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
