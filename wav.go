package fir

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes a filtered signal as mono 32-bit PCM.
func WriteWAV(w io.WriteSeeker, signal []int32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("fir: invalid sample rate %d", sampleRate)
	}

	enc := wav.NewEncoder(w, sampleRate, 32, 1, 1)

	data := make([]int, len(signal))
	for i, v := range signal {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 32,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("fir: could not encode samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("fir: could not finalize wav: %w", err)
	}

	return nil
}
