package uuid

import (
	"errors"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid"
)

// Generator random identifier source
type Generator interface {
	Generate() (string, error)
}

// NanoIDGenerator Generator implementation using NanoID
type NanoIDGenerator struct {
	Length int
}

var _ Generator = &NanoIDGenerator{}

// NewNanoIDGenerator create a new `NanoIDGenerator` instance
func NewNanoIDGenerator(length int) (*NanoIDGenerator, error) {
	if length < 1 {
		return nil, errors.New("length must be at least 1")
	}
	return &NanoIDGenerator{Length: length}, nil
}

// Generate generate a NanoID
func (ng *NanoIDGenerator) Generate() (string, error) {
	return gonanoid.Nanoid(ng.Length)
}

// RequestID shaped for echo's request id middleware, which can't take an
// error. Falls back to a timestamp when the random source fails.
func (ng *NanoIDGenerator) RequestID() string {
	id, err := ng.Generate()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id
}
