package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAV_HeaderLayout(t *testing.T) {
	pcm := make([]byte, 9600) // 200ms of 16-bit mono 24kHz
	out := EncodeWAV(pcm, NumChannels, SampleRate, BitsPerSample)

	if len(out) != len(pcm)+44 {
		t.Fatalf("expected %d bytes, got %d", len(pcm)+44, len(out))
	}

	if !bytes.Equal(out[0:4], []byte("RIFF")) {
		t.Fatalf("offset 0: expected RIFF, got %q", out[0:4])
	}
	if got := binary.LittleEndian.Uint32(out[4:8]); got != uint32(36+len(pcm)) {
		t.Fatalf("ChunkSize: expected %d, got %d", 36+len(pcm), got)
	}
	if !bytes.Equal(out[8:12], []byte("WAVE")) {
		t.Fatalf("offset 8: expected WAVE, got %q", out[8:12])
	}
	if !bytes.Equal(out[12:16], []byte("fmt ")) {
		t.Fatalf("offset 12: expected 'fmt ', got %q", out[12:16])
	}
	if got := binary.LittleEndian.Uint32(out[16:20]); got != 16 {
		t.Fatalf("Subchunk1Size: expected 16, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[20:22]); got != 1 {
		t.Fatalf("AudioFormat: expected 1 (PCM), got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[22:24]); got != 1 {
		t.Fatalf("NumChannels: expected 1, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[24:28]); got != 24000 {
		t.Fatalf("SampleRate: expected 24000, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[28:32]); got != 48000 {
		t.Fatalf("ByteRate: expected 48000, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[32:34]); got != 2 {
		t.Fatalf("BlockAlign: expected 2, got %d", got)
	}
	if got := binary.LittleEndian.Uint16(out[34:36]); got != 16 {
		t.Fatalf("BitsPerSample: expected 16, got %d", got)
	}
	if !bytes.Equal(out[36:40], []byte("data")) {
		t.Fatalf("offset 36: expected data, got %q", out[36:40])
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != uint32(len(pcm)) {
		t.Fatalf("Subchunk2Size: expected %d, got %d", len(pcm), got)
	}
}

func TestEncodeWAV_PayloadPassthrough(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFE}
	out := EncodeWAV(pcm, NumChannels, SampleRate, BitsPerSample)

	if !bytes.Equal(out[44:], pcm) {
		t.Fatalf("payload altered: %v", out[44:])
	}
}

func TestEncodeWAV_EmptyPayload(t *testing.T) {
	out := EncodeWAV(nil, NumChannels, SampleRate, BitsPerSample)

	if len(out) != 44 {
		t.Fatalf("expected bare 44-byte header, got %d bytes", len(out))
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != 0 {
		t.Fatalf("Subchunk2Size: expected 0, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(out[4:8]); got != 36 {
		t.Fatalf("ChunkSize: expected 36, got %d", got)
	}
}
