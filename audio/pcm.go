package audio

import (
	"encoding/binary"
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Capture format delivered by the voice backend: 48 kHz stereo s16le,
// the native Discord voice format after opus decoding.
const (
	SampleRate = 48000
	Channels   = 2
	BitDepth   = 16
)

// WriteWAV flushes raw interleaved s16le PCM to a WAV file so ffmpeg can
// consume it without format flags. A trailing odd byte is discarded.
func WriteWAV(path string, pcm []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, SampleRate, BitDepth, Channels, 1)

	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}

	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: Channels, SampleRate: SampleRate},
		Data:           samples,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM to %s: %w", path, err)
	}
	return enc.Close()
}
