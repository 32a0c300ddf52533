package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
)

const (
	// SampleRate is the canonical sample rate all decoded audio is resampled to
	SampleRate = 16000

	// silenceRMSThreshold is the RMS energy floor below which a chunk is
	// treated as silence
	silenceRMSThreshold = 0.0001
)

// Decode converts arbitrary container bytes (WebM, MP4, WAV, ...) to mono
// float32 PCM at SampleRate using ffmpeg. Raw int16 PCM input also decodes
// cleanly since ffmpeg probes the stream.
func Decode(ctx context.Context, raw []byte) ([]float32, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	// ffmpeg -i pipe:0 -f f32le -acodec pcm_f32le -ar 16000 -ac 1 pipe:1
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", "pipe:0",
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"-ar", fmt.Sprint(SampleRate),
		"-ac", "1",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(raw)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode: %w: %s", err, stderr.String())
	}

	return bytesToSamples(stdout.Bytes()), nil
}

// DecodePCM16 interprets raw bytes as little-endian int16 PCM and scales
// to float32 in [-1, 1].
func DecodePCM16(raw []byte) []float32 {
	samples := make([]float32, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		v := int16(binary.LittleEndian.Uint16(raw[i:]))
		samples = append(samples, float32(v)/32768.0)
	}
	return samples
}

// IsSilent checks if the audio is silent based on RMS energy
func IsSilent(samples []float32) bool {
	if len(samples) == 0 {
		return true
	}
	return RMS(samples) < silenceRMSThreshold
}

// RMS returns the root-mean-square energy of the samples
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Duration returns the play length of the samples in seconds
func Duration(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	return float64(len(samples)) / float64(SampleRate)
}

func bytesToSamples(raw []byte) []float32 {
	samples := make([]float32, 0, len(raw)/4)
	for i := 0; i+3 < len(raw); i += 4 {
		bits := binary.LittleEndian.Uint32(raw[i:])
		samples = append(samples, math.Float32frombits(bits))
	}
	return samples
}
