package hashing

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestHashBytes_KnownVectors(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashBytes(nil))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashBytes([]byte("abc")))
}

func TestHashBytes_Deterministic(t *testing.T) {
	data := bytes.Repeat([]byte("truth"), 4096)
	first := HashBytes(data)
	assert.Equal(t, first, HashBytes(data))
	assert.Len(t, first, HexLength)

	streamed, err := HashReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, first, streamed)
}

func TestHashReader_PropagatesReadErrors(t *testing.T) {
	_, err := HashReader(failingReader{})
	assert.ErrorContains(t, err, "disk gone")
}

func TestNormalize(t *testing.T) {
	h := HashBytes([]byte("abc"))

	got, err := Normalize("  0x" + strings.ToUpper(h) + " ")
	require.NoError(t, err)
	assert.Equal(t, h, got)

	_, err = Normalize(h[:63])
	assert.Error(t, err)

	_, err = Normalize(strings.Repeat("z", 64))
	assert.Error(t, err)

	assert.True(t, IsValid(h))
	assert.False(t, IsValid(""))
}

func TestBytes32RoundTrip(t *testing.T) {
	h := HashBytes([]byte("abc"))
	b, err := ToBytes32(h)
	require.NoError(t, err)
	assert.Equal(t, h, FromBytes32(b))
	assert.False(t, IsZero(b))
	assert.True(t, IsZero([32]byte{}))
}
