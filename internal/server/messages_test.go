package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoErrOk(t *testing.T) {
	result := NoErrOK(1, map[string]any{
		"room_id": "alice_bob",
	})

	assert.NotNil(t, result, "expected result to be non-nil")
	assert.NotNil(t, result.Response, "expected response to be non-nil")
	assert.Equal(t, 1, result.Id, "expected Id to match")
	assert.WithinDuration(t, Now(), result.Timestamp, time.Second, "expected Timestamp to be recent")
	assert.Equal(t, http.StatusOK, result.Response.ResponseCode, "expected ResponseCode to match")
	assert.Equal(t, map[string]any{"room_id": "alice_bob"}, result.Response.Data, "expected Data to match")
}

func TestErrBadRequest(t *testing.T) {
	t.Run("keeps positive id", func(t *testing.T) {
		result := ErrBadRequest(3, "body is required")
		assert.Equal(t, 3, result.Id, "expected Id to match")
		assert.Equal(t, http.StatusBadRequest, result.Response.ResponseCode)
		assert.Equal(t, "body is required", result.Response.Error)
	})

	t.Run("drops non-positive id", func(t *testing.T) {
		result := ErrBadRequest(-1, "invalid message format")
		assert.Equal(t, 0, result.Id, "expected Id to be omitted")
		assert.Equal(t, http.StatusBadRequest, result.Response.ResponseCode)
	})
}

func TestErrServiceUnavailable(t *testing.T) {
	result := ErrServiceUnavailable(2)
	assert.Equal(t, 2, result.Id, "expected Id to match")
	assert.Equal(t, http.StatusServiceUnavailable, result.Response.ResponseCode)
	assert.Equal(t, "service unavailable", result.Response.Error)
}

func TestNow(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location(), "expected UTC timestamp")
	assert.Equal(t, now, now.Round(time.Millisecond), "expected millisecond precision")
}
