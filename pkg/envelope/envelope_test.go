package envelope_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/envelope"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("splits target into path and query", func(t *testing.T) {
		t.Parallel()
		env := envelope.New(envelope.Params{Method: "get", Target: "/items/42?full=1"})

		assert.Equal(t, "GET", env.Method())
		assert.Equal(t, "/items/42", env.Path())
		assert.Equal(t, "full=1", env.Query())
		assert.Equal(t, "/items/42?full=1", env.Target())
	})

	t.Run("empty target becomes root", func(t *testing.T) {
		t.Parallel()
		env := envelope.New(envelope.Params{Method: "GET"})
		assert.Equal(t, "/", env.Path())
		assert.Equal(t, "/", env.Target())
	})

	t.Run("headers are case insensitive", func(t *testing.T) {
		t.Parallel()
		env := envelope.New(envelope.Params{Headers: map[string]string{"X-Requested-With": "XMLHttpRequest"}})
		assert.Equal(t, "XMLHttpRequest", env.Header("x-requested-with"))
		assert.Equal(t, "XMLHttpRequest", env.Header("X-REQUESTED-WITH"))
	})

	t.Run("zero arrival time is defaulted", func(t *testing.T) {
		t.Parallel()
		env := envelope.New(envelope.Params{})
		assert.False(t, env.ArrivedAt().IsZero())

		at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		env = envelope.New(envelope.Params{ArrivedAt: at})
		assert.Equal(t, at, env.ArrivedAt())
	})
}

func TestEnvelopeImmutability(t *testing.T) {
	t.Parallel()

	body := []byte("payload")
	headers := map[string]string{"Accept": "text/plain"}
	env := envelope.New(envelope.Params{Body: body, Headers: headers})

	body[0] = 'X'
	headers["Accept"] = "changed"
	assert.Equal(t, "payload", string(env.Body()))
	assert.Equal(t, "text/plain", env.Header("accept"))

	got := env.Body()
	got[0] = 'Y'
	assert.Equal(t, "payload", string(env.Body()))

	h := env.Headers()
	h["accept"] = "mutated"
	assert.Equal(t, "text/plain", env.Header("accept"))

	require.True(t, env.HasBody())
	assert.False(t, envelope.New(envelope.Params{}).HasBody())
	assert.Nil(t, envelope.New(envelope.Params{}).Body())
}
