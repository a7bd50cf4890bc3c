package signal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	t.Run("signal cancels the context", func(t *testing.T) {
		h := NewHandler(context.Background())
		defer h.Stop()

		h.sigChan <- nil

		select {
		case <-h.Context().Done():
		case <-time.After(time.Second):
			t.Fatal("context was not canceled after signal")
		}

		select {
		case <-h.Interrupted():
		default:
			t.Fatal("interrupted channel not closed")
		}
	})

	t.Run("stop cancels without marking interrupted", func(t *testing.T) {
		h := NewHandler(context.Background())
		h.Stop()

		require.ErrorIs(t, h.Context().Err(), context.Canceled)
		select {
		case <-h.Interrupted():
			t.Fatal("stop must not close the interrupted channel")
		default:
		}
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		h := NewHandler(context.Background())
		h.Stop()
		assert.NotPanics(t, h.Stop)
	})

	t.Run("parent cancellation propagates", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		h := NewHandler(parent)
		defer h.Stop()

		cancel()

		select {
		case <-h.Context().Done():
		case <-time.After(time.Second):
			t.Fatal("parent cancellation did not propagate")
		}
	})

	t.Run("repeated signals are drained", func(t *testing.T) {
		h := NewHandler(context.Background())
		defer h.Stop()

		h.sigChan <- nil
		h.sigChan <- nil

		select {
		case <-h.Interrupted():
		case <-time.After(time.Second):
			t.Fatal("interrupted channel not closed")
		}
	})
}
