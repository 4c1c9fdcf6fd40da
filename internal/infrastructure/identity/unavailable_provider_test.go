package identity

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"truthprevails/pkg/errors"
)

func TestUnavailableProvider(t *testing.T) {
	p := NewUnavailableProvider("firebase is not configured")
	ctx := context.Background()

	assert.Equal(t, "disabled", p.Name())

	_, err := p.CreateUser(ctx, "ada@example.com", "password123", "Ada")
	assert.True(t, errors.Is(err, errors.CodeUnavailable))
	assert.Equal(t, http.StatusServiceUnavailable, errors.StatusOf(err))

	_, err = p.VerifyToken(ctx, "any")
	assert.True(t, errors.Is(err, errors.CodeUnavailable))
	assert.ErrorContains(t, err, "firebase is not configured")

	assert.True(t, errors.Is(p.UpdateDisplayName(ctx, "uid", "Ada"), errors.CodeUnavailable))
	assert.True(t, errors.Is(p.DeleteUser(ctx, "uid"), errors.CodeUnavailable))
}
