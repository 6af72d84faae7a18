// SPDX-License-Identifier: EPL-2.0

package sysex

import (
	"bytes"
	"fmt"
)

const (
	Start = 0xF0
	End   = 0xF7

	// ManufacturerID identifies the sampler on the MIDI bus.
	ManufacturerID = 0x69
)

// Command is the first byte of every decoded message.
type Command byte

const (
	CmdSample     Command = 0x00
	CmdSampleBank Command = 0x01
	CmdRAMBank    Command = 0x02
	CmdParam      Command = 0x04
	CmdUtil       Command = 0x05

	// CmdRequest is ORed into a command to ask the device for data
	// instead of sending it.
	CmdRequest Command = 0x08
)

// Selectors carried in the slot byte of a CmdUtil message.
const (
	UtilVoiceBankName byte = 0x00
	UtilRAMBankName   byte = 0x01
	UtilFirmware      byte = 0x02
	UtilSerialNumber  byte = 0x03
)

// Base strips the request flag.
func (c Command) Base() Command { return c &^ CmdRequest }

// IsRequest reports whether the request flag is set.
func (c Command) IsRequest() bool { return c&CmdRequest != 0 }

func (c Command) String() string {
	var name string
	switch c.Base() {
	case CmdSample:
		name = "sample"
	case CmdSampleBank:
		name = "sample-bank"
	case CmdRAMBank:
		name = "ram-bank"
	case CmdParam:
		name = "param"
	case CmdUtil:
		name = "util"
	default:
		name = fmt.Sprintf("cmd(0x%02x)", byte(c.Base()))
	}

	if c.IsRequest() {
		return name + "?"
	}

	return name
}

// Frame wraps a payload as F0 id packed F7. The payload is packed with
// PackCompat, which is what the device firmware expects.
func Frame(id byte, payload []byte) []byte {
	packed := PackCompat(payload)

	msg := make([]byte, 0, len(packed)+3)
	msg = append(msg, Start, id)
	msg = append(msg, packed...)

	return append(msg, End)
}

// Unframe strips the F0 id ... F7 envelope and unpacks the payload.
func Unframe(msg []byte) (byte, []byte, error) {
	if len(msg) < 3 {
		return 0, nil, ErrShortMessage
	}
	if msg[0] != Start || msg[len(msg)-1] != End {
		return 0, nil, ErrNotSysEx
	}

	return msg[1], Unpack(msg[2 : len(msg)-1]), nil
}

const (
	// HeaderSize is the fixed header preceding every sample dump payload.
	HeaderSize = 32
	// NameSize is the maximum sample name length.
	NameSize = 24
)

// SampleHeader is the 32 byte header of sample, bank and util messages.
//
//	offset 0      command
//	offset 1..24  name, NUL padded
//	offset 25     bank
//	offset 26     slot (or util selector)
type SampleHeader struct {
	Command Command
	Name    string
	Bank    byte
	Slot    byte
}

// MarshalBinary encodes the header. Names longer than NameSize bytes are
// truncated.
func (h SampleHeader) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	buf[0] = byte(h.Command)
	copy(buf[1:1+NameSize], h.Name)
	buf[25] = h.Bank
	buf[26] = h.Slot

	return buf, nil
}

// minHeader covers the fields up to and including the slot byte. Trailing
// padding may be missing from header-only messages because PackCompat drops
// the last byte.
const minHeader = 27

// UnmarshalBinary decodes a header from the start of data.
func (h *SampleHeader) UnmarshalBinary(data []byte) error {
	if len(data) < minHeader {
		return fmt.Errorf("%w: header needs %d bytes, got %d", ErrShortMessage, minHeader, len(data))
	}

	name := data[1 : 1+NameSize]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	h.Command = Command(data[0])
	h.Name = string(name)
	h.Bank = data[25]
	h.Slot = data[26]

	return nil
}

// EncodeSampleDump builds a complete SysEx message carrying h followed by
// sample data in u-law storage format.
func EncodeSampleDump(h SampleHeader, samples []byte) []byte {
	payload, _ := h.MarshalBinary()
	payload = append(payload, samples...)

	return Frame(ManufacturerID, payload)
}

// EncodeRequest builds a header-only message, for example a sample request
// with CmdSample|CmdRequest.
func EncodeRequest(h SampleHeader) []byte {
	return EncodeSampleDump(h, nil)
}

// DecodeSampleDump parses a message received from the device. The returned
// slice holds whatever follows the header.
func DecodeSampleDump(msg []byte) (SampleHeader, []byte, error) {
	var h SampleHeader

	id, payload, err := Unframe(msg)
	if err != nil {
		return h, nil, err
	}
	if id != ManufacturerID {
		return h, nil, fmt.Errorf("%w: %#02x", ErrUnknownDevice, id)
	}

	if err := h.UnmarshalBinary(payload); err != nil {
		return h, nil, err
	}

	return h, payload[min(len(payload), HeaderSize):], nil
}
