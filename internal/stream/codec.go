package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// SampleSize: tres float32 little-endian por muestra.
const SampleSize = 12

var ErrShortFrame = errors.New("stream: frame length is not a multiple of sample size")

// Sample es un punto del stream: tiempo (s), oxy y deoxy.
type Sample struct {
	T     float32
	Oxy   float32
	Deoxy float32
}

func EncodeSamples(samples []Sample) []byte {
	out := make([]byte, SampleSize*len(samples))
	for i, s := range samples {
		b := out[i*SampleSize:]
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(s.T))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(s.Oxy))
		binary.LittleEndian.PutUint32(b[8:], math.Float32bits(s.Deoxy))
	}
	return out
}

func DecodeSamples(data []byte) ([]Sample, error) {
	if len(data)%SampleSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortFrame, len(data))
	}
	samples := make([]Sample, len(data)/SampleSize)
	for i := range samples {
		b := data[i*SampleSize:]
		samples[i] = Sample{
			T:     math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			Oxy:   math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			Deoxy: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		}
	}
	return samples, nil
}
