// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	gowav "github.com/go-audio/wav"
)

func TestWriteMono16(t *testing.T) {
	t.Parallel()

	// More than one write chunk.
	samples := make([]int16, 10000)
	for i := range samples {
		samples[i] = int16(i*7 - 30000)
	}

	var out bytes.Buffer
	if err := WriteMono16(&out, 16000, samples); err != nil {
		t.Fatalf("WriteMono16: %v", err)
	}
	if out.Len() != 44+2*len(samples) {
		t.Fatalf("wrote %d bytes, want %d", out.Len(), 44+2*len(samples))
	}

	d, err := Parse(out.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.DataOffset != 44 || d.SampleRate != 16000 || d.ByteRate != 32000 || d.BlockAlign != 2 {
		t.Errorf("header: %+v", d)
	}

	dec := gowav.NewDecoder(bytes.NewReader(out.Bytes()))
	ib, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer: %v", err)
	}
	want := make([]int, len(samples))
	for i, s := range samples {
		want[i] = int(s)
	}
	if !slices.Equal(ib.Data, want) {
		t.Error("go-audio decoded different samples")
	}
}

func TestWriteMono16Empty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := WriteMono16(&out, 8000, nil); err != nil {
		t.Fatalf("WriteMono16: %v", err)
	}
	if out.Len() != 44 {
		t.Errorf("wrote %d bytes, want a bare 44 byte header", out.Len())
	}

	d, err := Parse(out.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.DataLength != 0 {
		t.Errorf("DataLength = %d, want 0", d.DataLength)
	}
}

type failWriter struct {
	n   int // successful writes before failing
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, w.err
	}
	w.n--
	return len(p), nil
}

func TestWriteMono16Errors(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("disk full")

	for _, n := range []int{0, 1} {
		w := &failWriter{n: n, err: errDisk}
		if err := WriteMono16(w, 8000, make([]int16, 10)); !errors.Is(err, errDisk) {
			t.Errorf("after %d writes: error = %v, want %v", n, err, errDisk)
		}
	}
}

func BenchmarkWriteMono16(b *testing.B) {
	samples := make([]int16, 16000)
	var out bytes.Buffer

	b.ReportAllocs()
	for b.Loop() {
		out.Reset()
		if err := WriteMono16(&out, 16000, samples); err != nil {
			b.Fatal(err)
		}
	}
}
