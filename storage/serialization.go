package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MarshalVector encodes vector as a varint length followed by fixed-width
// float64 values.
func MarshalVector(vector []float64) []byte {
	size := varint.Int.Size(len(vector))
	for _, v := range vector {
		size += raw.Float64.Size(v)
	}

	buf := make([]byte, size)
	n := varint.Int.Marshal(len(vector), buf)
	for _, v := range vector {
		n += raw.Float64.Marshal(v, buf[n:])
	}
	return buf
}

// UnmarshalVector decodes data produced by MarshalVector.
func UnmarshalVector(data []byte) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}

	length, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vector length: %v", ErrSerializationFailed, err)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative vector length %d", ErrSerializationFailed, length)
	}
	// Every element takes eight bytes.
	if remaining := len(data) - n; remaining < length*8 {
		return nil, fmt.Errorf("%w: want %d values, have %d bytes", ErrTruncatedData, length, remaining)
	}

	vector := make([]float64, length)
	for i := range vector {
		v, m, err := raw.Float64.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %v", ErrSerializationFailed, i, err)
		}
		vector[i] = v
		n += m
	}
	return vector, nil
}
