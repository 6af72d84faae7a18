// SPDX-License-Identifier: EPL-2.0

package lumacodec

import (
	"bytes"
	"fmt"
)

// Format identifies a file type by its content.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatAIFF
	FormatFLAC
	FormatVorbis
	FormatMP3
)

func (f Format) String() string {
	switch f {
	case FormatUnknown:
		return "unknown"
	case FormatWAV:
		return "wav"
	case FormatAIFF:
		return "aiff"
	case FormatFLAC:
		return "flac"
	case FormatVorbis:
		return "ogg"
	case FormatMP3:
		return "mp3"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// oggProbe bounds how much of the first Ogg page is searched for the codec
// identification header.
const oggProbe = 128

var (
	magicRIFF   = []byte("RIFF")
	magicWAVE   = []byte("WAVE")
	magicFORM   = []byte("FORM")
	magicAIFF   = []byte("AIFF")
	magicAIFC   = []byte("AIFC")
	magicFLAC   = []byte("fLaC")
	magicOgg    = []byte("OggS")
	magicID3    = []byte("ID3")
	oggFLACID   = []byte("\x7fFLAC")
	oggVorbisID = []byte("\x01vorbis")
)

// Sniff guesses the format of a file from its first bytes. Ogg files
// carrying FLAC are reported as FormatFLAC, so decoding them fails with
// the FLAC decoder's Ogg specific error rather than ErrUnknownFormat.
func Sniff(data []byte) Format {
	switch {
	case len(data) >= 12 && bytes.HasPrefix(data, magicRIFF) && bytes.Equal(data[8:12], magicWAVE):
		return FormatWAV

	case len(data) >= 12 && bytes.HasPrefix(data, magicFORM) &&
		(bytes.Equal(data[8:12], magicAIFF) || bytes.Equal(data[8:12], magicAIFC)):
		return FormatAIFF

	case bytes.HasPrefix(data, magicFLAC):
		return FormatFLAC

	case bytes.HasPrefix(data, magicOgg):
		page := data[:min(len(data), oggProbe)]
		switch {
		case bytes.Contains(page, oggFLACID):
			return FormatFLAC
		case bytes.Contains(page, oggVorbisID):
			return FormatVorbis
		}

	case bytes.HasPrefix(data, magicID3):
		if rest := data[id3Size(data):]; bytes.HasPrefix(rest, magicFLAC) {
			return FormatFLAC
		}
		return FormatMP3

	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3
	}

	return FormatUnknown
}

// id3Size returns the length of a leading ID3v2 tag including its header.
func id3Size(data []byte) int {
	if len(data) < 10 {
		return len(data)
	}

	var size int
	for _, b := range data[6:10] {
		size = size<<7 | int(b&0x7F)
	}

	return min(size+10, len(data))
}
