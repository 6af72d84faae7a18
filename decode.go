// SPDX-License-Identifier: EPL-2.0

package lumacodec

import (
	"fmt"

	"github.com/ik5/lumacodec/audio"
	"github.com/ik5/lumacodec/formats/aiff"
	"github.com/ik5/lumacodec/formats/flac"
	"github.com/ik5/lumacodec/formats/mp3"
	"github.com/ik5/lumacodec/formats/vorbis"
	"github.com/ik5/lumacodec/formats/wav"
)

// Options configure the decoders registered by NewRegistry.
type Options struct {
	// KeepChannels keeps stereo files stereo instead of folding them to
	// mono.
	KeepChannels bool
	// FLAC configures the FLAC decoder.
	FLAC flac.Decoder
}

// NewRegistry returns a registry holding a decoder for every Format,
// keyed by Format.String.
func NewRegistry(opts Options) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(FormatWAV.String(), wav.Decoder{KeepChannels: opts.KeepChannels})
	reg.Register(FormatAIFF.String(), aiff.Decoder{KeepChannels: opts.KeepChannels})
	reg.Register(FormatFLAC.String(), opts.FLAC)
	reg.Register(FormatVorbis.String(), vorbis.Decoder{KeepChannels: opts.KeepChannels})
	reg.Register(FormatMP3.String(), mp3.Decoder{KeepChannels: opts.KeepChannels})

	return reg
}

var defaultRegistry = NewRegistry(Options{})

// Decode sniffs the format of data and decodes it with the default
// decoders. The result is always mono; the FLAC decoder keeps channels, so
// its output is folded here.
func Decode(data []byte) (*audio.Buffer, error) {
	buf, err := DecodeWith(defaultRegistry, data)
	if err != nil {
		return nil, err
	}

	if buf.NumChannels() > 1 {
		buf = audio.NewMonoBuffer(buf.Mono(), buf.SampleRate)
	}

	return buf, nil
}

// DecodeWith sniffs the format of data and decodes it with the decoder reg
// holds for that format.
func DecodeWith(reg *audio.Registry, data []byte) (*audio.Buffer, error) {
	format := Sniff(data)
	if format == FormatUnknown {
		return nil, ErrUnknownFormat
	}

	dec, ok := reg.Get(format.String())
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %s", ErrUnknownFormat, format)
	}

	buf, err := dec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	return buf, nil
}
