package audio

import "encoding/binary"

// DecodeS16LE converts raw little-endian signed 16-bit PCM bytes into
// interleaved samples. A trailing odd byte is ignored.
func DecodeS16LE(data []byte) []int16 {
	samples := make([]int16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		samples = append(samples, int16(binary.LittleEndian.Uint16(data[i:])))
	}
	return samples
}
