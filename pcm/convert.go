// SPDX-License-Identifier: EPL-2.0

package pcm

import "encoding/binary"

// Float32ToInt16 converts one normalized sample to 16-bit PCM,
// clamping to [-1, 1] first.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Scale by 32767 so +1.0 cannot overflow int16.
	return int16(x * 32767.0)
}

// Int16ToFloat32 converts one 16-bit PCM sample to normalized float32.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// EncodeInt16LE converts src samples to little-endian 16-bit PCM bytes
// in dst and returns the number of bytes written. dst must hold at
// least 2*len(src) bytes.
func EncodeInt16LE(dst []byte, src []float32) int {
	for i, x := range src {
		binary.LittleEndian.PutUint16(dst[2*i:2*i+2], uint16(Float32ToInt16(x)))
	}

	return len(src) * 2
}

// DecodeInt16LE converts little-endian 16-bit PCM bytes from src into
// normalized float32 samples in dst and returns the number of samples
// written. Trailing odd bytes are ignored. dst must hold at least
// len(src)/2 samples.
func DecodeInt16LE(dst []float32, src []byte) int {
	samples := len(src) / 2
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(src[2*i : 2*i+2]))
		dst[i] = Int16ToFloat32(v)
	}

	return samples
}
