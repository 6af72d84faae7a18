// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample types shared by every codec in lumacodec
// and the small streaming pipeline used to convert them.
//
// # Buffer
//
// A Buffer is a fully decoded clip: one []float32 per channel, samples
// normalized to [-1, 1], all Length long. Every format decoder returns one:
//
//	type Decoder interface {
//	    Decode(data []byte) (*Buffer, error)
//	}
//
// Decoders never read files themselves. The caller reads the whole file
// and passes the bytes, so a decode is a pure function of its input and is
// safe to run on many goroutines at once.
//
// # Registry
//
// A Registry maps a format key to a Decoder:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.Get("wav")
//
// # Streaming
//
// Source is a pull based stream of interleaved samples. Buffer.Source
// turns a clip into one, Collect turns one back into a clip. Resampler
// changes the sample rate with cubic interpolation and MonoMixer averages
// the channels:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(buf.Source(), 8000))
//
// Resample and ResampleToMono16 wrap the common cases.
//
// ReadSamples returns io.EOF once the stream is exhausted, possibly
// together with the last samples, so process n before checking err:
//
//	for {
//	    n, err := src.ReadSamples(chunk)
//	    use(chunk[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # go-audio
//
// AsIntBuffer, AsFloatBuffer and FromIntBuffer convert to and from the
// github.com/go-audio/audio buffer types used by the go-audio encoders.
package audio
