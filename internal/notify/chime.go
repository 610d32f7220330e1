package notify

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
)

// Chime synthesis parameters: two descending sine tones, A5 then E5,
// 16-bit mono PCM. The file is written once per process under the OS temp
// directory and reused.
const (
	sampleRate   = 44100
	toneDuration = 0.15 // seconds per tone
	firstToneHz  = 880.0
	secondToneHz = 659.25
	amplitude    = 0.4
)

// writeChimeFile renders the chime as a WAV file and returns its path.
func writeChimeFile() (string, error) {
	path := filepath.Join(os.TempDir(), "gestao-chime.wav")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	pcm := renderChime()
	data := encodeWAV(pcm)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// renderChime produces the PCM samples for both tones back to back, with a
// short linear fade on each tone edge to avoid clicks.
func renderChime() []int16 {
	toneSamples := int(toneDuration * sampleRate)
	fade := toneSamples / 10

	samples := make([]int16, 0, 2*toneSamples)
	for _, freq := range []float64{firstToneHz, secondToneHz} {
		for i := 0; i < toneSamples; i++ {
			v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
			if i < fade {
				v *= float64(i) / float64(fade)
			} else if i > toneSamples-fade {
				v *= float64(toneSamples-i) / float64(fade)
			}
			samples = append(samples, int16(v*math.MaxInt16))
		}
	}
	return samples
}

// encodeWAV wraps PCM samples in a minimal RIFF/WAVE container.
func encodeWAV(samples []int16) []byte {
	dataSize := len(samples) * 2
	buf := make([]byte, 0, 44+dataSize)

	le := binary.LittleEndian
	u32 := func(v uint32) []byte {
		b := make([]byte, 4)
		le.PutUint32(b, v)
		return b
	}
	u16 := func(v uint16) []byte {
		b := make([]byte, 2)
		le.PutUint16(b, v)
		return b
	}

	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, u32(uint32(36+dataSize))...)
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	buf = append(buf, u32(16)...)                // chunk size
	buf = append(buf, u16(1)...)                 // PCM
	buf = append(buf, u16(1)...)                 // mono
	buf = append(buf, u32(sampleRate)...)        // sample rate
	buf = append(buf, u32(sampleRate*2)...)      // byte rate
	buf = append(buf, u16(2)...)                 // block align
	buf = append(buf, u16(16)...)                // bits per sample

	buf = append(buf, []byte("data")...)
	buf = append(buf, u32(uint32(dataSize))...)
	for _, s := range samples {
		buf = append(buf, u16(uint16(s))...)
	}
	return buf
}
