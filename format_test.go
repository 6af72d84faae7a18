// SPDX-License-Identifier: EPL-2.0

package lumacodec

import "testing"

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), FormatWAV},
		{"riff not wave", []byte("RIFF\x24\x00\x00\x00AVI LIST"), FormatUnknown},
		{"aiff", []byte("FORM\x00\x00\x00\x2eAIFFCOMM"), FormatAIFF},
		{"aifc", []byte("FORM\x00\x00\x00\x2eAIFCFVER"), FormatAIFF},
		{"form not aiff", []byte("FORM\x00\x00\x00\x2e8SVXVHDR"), FormatUnknown},
		{"flac", []byte("fLaC\x80\x00\x00\x22"), FormatFLAC},
		{"flac after id3", []byte("ID3\x04\x00\x00\x00\x00\x00\x02\x00\x00fLaC"), FormatFLAC},
		{"mp3 after id3", []byte("ID3\x04\x00\x00\x00\x00\x00\x02\x00\x00\xff\xfb"), FormatMP3},
		{"mp3 frame", []byte{0xFF, 0xFB, 0x90, 0x64}, FormatMP3},
		{"ogg vorbis", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00\x01vorbis"), FormatVorbis},
		{"ogg flac", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00\x7fFLAC"), FormatFLAC},
		{"ogg opus", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00OpusHead"), FormatUnknown},
		{"short", []byte("RIF"), FormatUnknown},
		{"empty", nil, FormatUnknown},
		{"text", []byte("hello world"), FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Sniff(tt.data); got != tt.want {
				t.Errorf("Sniff = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	t.Parallel()

	want := map[Format]string{
		FormatUnknown: "unknown",
		FormatWAV:     "wav",
		FormatAIFF:    "aiff",
		FormatFLAC:    "flac",
		FormatVorbis:  "ogg",
		FormatMP3:     "mp3",
		Format(42):    "Format(42)",
	}
	for f, s := range want {
		if got := f.String(); got != s {
			t.Errorf("Format(%d).String() = %q, want %q", int(f), got, s)
		}
	}
}

func TestID3Size(t *testing.T) {
	t.Parallel()

	// Syncsafe size 0x0201 is 257 bytes.
	tag := append([]byte("ID3\x04\x00\x00\x00\x00\x02\x01"), make([]byte, 300)...)
	if got := id3Size(tag); got != 267 {
		t.Errorf("id3Size = %d, want 267", got)
	}
	if got := id3Size(tag[:100]); got != 100 {
		t.Errorf("id3Size of a cut tag = %d, want 100", got)
	}
	if got := id3Size([]byte("ID3")); got != 3 {
		t.Errorf("id3Size of a bare magic = %d, want 3", got)
	}
}
