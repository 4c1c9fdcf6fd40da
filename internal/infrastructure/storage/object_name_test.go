package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthprevails/pkg/errors"
)

func TestObjectNameFor(t *testing.T) {
	name := objectNameFor("/files/user-1/", "Contract.PDF", "application/pdf")
	assert.True(t, strings.HasPrefix(name, "files/user-1/"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	fromType := objectNameFor("files", "no-extension", "image/png")
	assert.True(t, strings.HasSuffix(fromType, ".png"))

	unknown := objectNameFor("files", "blob", "application/x-unknown-thing")
	assert.True(t, strings.HasSuffix(unknown, ".bin"))

	assert.NotEqual(t, objectNameFor("f", "a.txt", ""), objectNameFor("f", "a.txt", ""))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	obj, err := s.UploadFile(context.Background(), strings.NewReader("hello"), "text/plain", "note.txt", "files/u1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), obj.Size)
	assert.True(t, strings.HasPrefix(obj.URL, "memory://files/u1/"))

	data, ok := s.Object(obj.ObjectName)
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, s.DeleteFile(context.Background(), obj.ObjectName))
	assert.Error(t, s.DeleteFile(context.Background(), obj.ObjectName))
	assert.Equal(t, 0, s.Len())
}

func TestUnavailableStore(t *testing.T) {
	s := NewUnavailableStore("no bucket")

	_, err := s.UploadFile(context.Background(), strings.NewReader("x"), "text/plain", "a.txt", "files")
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))
}
