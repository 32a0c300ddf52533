package stt

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 2.0}
	wav := EncodeWAV(samples, 16000)

	if len(wav) != 44+len(samples)*2 {
		t.Fatalf("unexpected wav length %d", len(wav))
	}
	if !bytes.Equal(wav[0:4], []byte("RIFF")) {
		t.Fatalf("missing RIFF marker: %q", wav[0:4])
	}
	if !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Fatalf("missing WAVE marker: %q", wav[8:12])
	}
	if riffSize := binary.LittleEndian.Uint32(wav[4:8]); riffSize != uint32(36+len(samples)*2) {
		t.Fatalf("unexpected RIFF size %d", riffSize)
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 16000 {
		t.Fatalf("unexpected sample rate %d", rate)
	}
	if bits := binary.LittleEndian.Uint16(wav[34:36]); bits != 16 {
		t.Fatalf("unexpected bit depth %d", bits)
	}
	if dataLen := binary.LittleEndian.Uint32(wav[40:44]); dataLen != uint32(len(samples)*2) {
		t.Fatalf("unexpected data length %d", dataLen)
	}
}

func TestEncodeWAVClampsSamples(t *testing.T) {
	wav := EncodeWAV([]float32{2.0, -2.0}, 16000)
	data := wav[44:]

	first := int16(binary.LittleEndian.Uint16(data[0:]))
	second := int16(binary.LittleEndian.Uint16(data[2:]))
	if first != 32767 {
		t.Fatalf("positive overflow not clamped: %d", first)
	}
	if second != -32767 {
		t.Fatalf("negative overflow not clamped: %d", second)
	}
}

func TestStubEngineDeterministic(t *testing.T) {
	engine := NewStubEngine()
	samples := make([]float32, 16000*4)

	ok, first, err := engine.Transcribe(context.Background(), samples, 16000)
	if err != nil || !ok {
		t.Fatalf("unexpected result: ok=%v err=%v", ok, err)
	}
	_, second, _ := engine.Transcribe(context.Background(), samples, 16000)
	if first != second {
		t.Fatalf("stub output not deterministic: %q vs %q", first, second)
	}
	if first == "" {
		t.Fatal("expected non-empty transcription")
	}
}

func TestStubEngineEmptySamples(t *testing.T) {
	engine := NewStubEngine()
	ok, text, err := engine.Transcribe(context.Background(), nil, 16000)
	if ok || text != "" || err != nil {
		t.Fatalf("unexpected result for empty input: ok=%v text=%q err=%v", ok, text, err)
	}
}

func TestStubEngineShortAudioFallbackText(t *testing.T) {
	engine := NewStubEngine()
	ok, text, err := engine.Transcribe(context.Background(), make([]float32, 100), 16000)
	if err != nil || !ok {
		t.Fatalf("unexpected result: ok=%v err=%v", ok, err)
	}
	if text != "Meeting discussion recorded" {
		t.Fatalf("unexpected fallback text %q", text)
	}
}
