package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefreshBus_DeliversToSubscribers(t *testing.T) {
	b := NewRefreshBus()

	var mu sync.Mutex
	var got []*RefreshEvent
	done := make(chan struct{})
	b.Subscribe(func(event *RefreshEvent) {
		mu.Lock()
		got = append(got, event)
		if len(got) == 2 {
			close(done)
		}
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Dispatch(ctx)

	b.ContactChanged("c1", "set_manual_status")
	b.ContactChanged("c2", "file_upload")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("events not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	require.Equal(t, "c1", got[0].ContactID)
	require.Equal(t, "set_manual_status", got[0].Source)
	require.Equal(t, "c2", got[1].ContactID)
	require.False(t, got[0].Timestamp.IsZero())
}

func TestRefreshBus_DropsWhenFull(t *testing.T) {
	b := NewRefreshBus()

	// No dispatcher running: fill the buffer and overflow it. The publisher
	// must never block.
	for i := 0; i < 150; i++ {
		b.ContactChanged("c1", "set_mode")
	}
	require.Equal(t, 100, b.Pending())
}

func TestRefreshBus_DispatchStopsOnCancel(t *testing.T) {
	b := NewRefreshBus()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- b.Dispatch(ctx)
	}()

	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
