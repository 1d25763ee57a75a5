// Package audio turns generated text into spoken audio: a dialogue script
// flow, multi-speaker speech synthesis, and a PCM-to-WAV transcode, with
// text-preserving fallback when synthesis fails.
package audio

import "encoding/binary"

// Fixed PCM contract for Gemini TTS output. The synthesizer's declared
// format is checked against these before transcoding.
const (
	NumChannels   = 1
	SampleRate    = 24000
	BitsPerSample = 16
)

const wavHeaderSize = 44

// EncodeWAV wraps raw PCM samples in a canonical 44-byte WAV container
// header. The output is exactly len(pcm)+44 bytes.
func EncodeWAV(pcm []byte, numChannels, sampleRate, bitsPerSample int) []byte {
	dataLen := len(pcm)
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	buf := make([]byte, wavHeaderSize+dataLen)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // fmt sub-chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM format id
	binary.LittleEndian.PutUint16(buf[22:24], uint16(numChannels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(bitsPerSample))

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))

	copy(buf[wavHeaderSize:], pcm)
	return buf
}
