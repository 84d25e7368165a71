// Package wsrenderer ships the one concrete Renderer/Scheduler pair named
// in SPEC_FULL.md §6: a binary patch-frame protocol delivered to a remote
// display client over a websocket, fronted by a chi handshake endpoint.
package wsrenderer

import (
	"encoding/binary"
	"errors"
	"io"
)

// frameHeaderSize is the fixed 4-byte header every frame carries: 1 byte
// type, 1 byte flags (reserved, always zero), 2 bytes big-endian payload
// length.
const frameHeaderSize = 4

// maxPayloadSize bounds a single frame's payload to what a uint16 length
// prefix can address.
const maxPayloadSize = 65535

var (
	errFrameTooShort = errors.New("wsrenderer: frame shorter than header")
	errFrameTruncated = errors.New("wsrenderer: frame payload truncated")
	errFrameTooLarge  = errors.New("wsrenderer: frame payload exceeds 65535 bytes")
)

// frameType identifies the payload carried by a frame.
type frameType uint8

const (
	frameHello   frameType = 0x00 // server -> client, sent once after upgrade
	framePatch   frameType = 0x01 // server -> client, one Diff set
	frameClick   frameType = 0x02 // client -> server, one ClickEvent
	framePing    frameType = 0x03 // server -> client, heartbeat
	framePong    frameType = 0x04 // client -> server, heartbeat reply
)

// encoder appends wire-format values to an internal buffer, grounded on
// the teacher's protocol.Encoder (varint-free here, since every value this
// package encodes fits a fixed-width field).
type encoder struct {
	buf []byte
}

func newEncoder() *encoder { return &encoder{buf: make([]byte, 0, 64)} }

func (e *encoder) writeByte(b byte)      { e.buf = append(e.buf, b) }
func (e *encoder) writeBytes(b []byte)   { e.buf = append(e.buf, b...) }
func (e *encoder) writeBool(b bool) {
	if b {
		e.writeByte(1)
	} else {
		e.writeByte(0)
	}
}
func (e *encoder) writeUint16(v uint16) {
	e.buf = binary.BigEndian.AppendUint16(e.buf, v)
}
func (e *encoder) writeUint32(v uint32) {
	e.buf = binary.BigEndian.AppendUint32(e.buf, v)
}
func (e *encoder) writeString(s string) {
	e.writeUint16(uint16(len(s)))
	e.buf = append(e.buf, s...)
}

// decoder reads wire-format values from a fixed buffer, grounded on the
// teacher's protocol.Decoder.
type decoder struct {
	buf []byte
	pos int
}

func newDecoder(buf []byte) *decoder { return &decoder{buf: buf} }

func (d *decoder) remaining() int { return len(d.buf) - d.pos }

func (d *decoder) readByte() (byte, error) {
	if d.remaining() < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readBool() (bool, error) {
	b, err := d.readByte()
	return b != 0, err
}

func (d *decoder) readUint16() (uint16, error) {
	if d.remaining() < 2 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint16(d.buf[d.pos:])
	d.pos += 2
	return v, nil
}

func (d *decoder) readUint32() (uint32, error) {
	if d.remaining() < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *decoder) readString() (string, error) {
	n, err := d.readUint16()
	if err != nil {
		return "", err
	}
	if d.remaining() < int(n) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

// wireFrame is the decoded header plus payload of one frame (spec: 4-byte
// header + variable payload, mirroring the teacher's protocol.Frame).
type wireFrame struct {
	typ     frameType
	payload []byte
}

func (f wireFrame) encode() []byte {
	buf := make([]byte, frameHeaderSize+len(f.payload))
	buf[0] = byte(f.typ)
	buf[1] = 0
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(f.payload)))
	copy(buf[frameHeaderSize:], f.payload)
	return buf
}

func decodeWireFrame(data []byte) (wireFrame, error) {
	if len(data) < frameHeaderSize {
		return wireFrame{}, errFrameTooShort
	}
	length := int(binary.BigEndian.Uint16(data[2:4]))
	if len(data) < frameHeaderSize+length {
		return wireFrame{}, errFrameTruncated
	}
	payload := make([]byte, length)
	copy(payload, data[frameHeaderSize:frameHeaderSize+length])
	return wireFrame{typ: frameType(data[0]), payload: payload}, nil
}

func newWireFrame(typ frameType, payload []byte) (wireFrame, error) {
	if len(payload) > maxPayloadSize {
		return wireFrame{}, errFrameTooLarge
	}
	return wireFrame{typ: typ, payload: payload}, nil
}
