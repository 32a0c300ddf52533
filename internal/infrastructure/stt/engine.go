package stt

import (
	"bytes"
	"context"
	"encoding/binary"
)

// Engine converts decoded PCM audio to text
type Engine interface {
	// Transcribe converts mono float32 PCM at the given sample rate to text.
	// ok reports whether a usable transcription was produced; err is reserved
	// for engine-level failures (network, auth), not empty speech.
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (ok bool, text string, err error)

	// Name identifies the engine for logging
	Name() string
}

// EncodeWAV renders mono float32 samples as a 16-bit PCM WAV file,
// which is what hosted transcription APIs ingest.
func EncodeWAV(samples []float32, sampleRate int) []byte {
	dataLen := len(samples) * 2
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataLen))

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	// fmt chunk: PCM, mono, 16-bit
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	for _, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.Write(buf, binary.LittleEndian, int16(s*32767))
	}

	return buf.Bytes()
}
