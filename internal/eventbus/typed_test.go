package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedBusPublishSubscribe(t *testing.T) {
	bus := NewTyped[string]()
	ch := bus.Subscribe()
	bus.Publish("hello")
	v := <-ch
	if v != "hello" {
		t.Fatalf("expected hello got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestTypedBusClose(t *testing.T) {
	bus := NewTyped[int]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	bus.Publish(1)
	assert.NoError(t, bus.PublishWait(context.Background(), 1))
	_, ok := <-bus.Subscribe()
	assert.False(t, ok, "subscribing to a closed bus yields a closed channel")
}

func TestTypedBusUnsubscribeAfterClose(t *testing.T) {
	bus := NewTyped[float64]()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestTypedBusDropsWhenFull(t *testing.T) {
	bus := NewTypedWithBuffer[int](1)
	ch := bus.Subscribe()
	bus.Publish(1)
	bus.Publish(2)
	assert.Equal(t, uint64(1), bus.Dropped())
	assert.Equal(t, 1, <-ch)
}

func TestTypedBusPublishWait(t *testing.T) {
	bus := NewTypedWithBuffer[int](0)
	ch := bus.Subscribe()
	got := make(chan int, 3)
	go func() {
		for v := range ch {
			got <- v
		}
	}()
	for i := 0; i < 3; i++ {
		require.NoError(t, bus.PublishWait(context.Background(), i))
	}
	for i := 0; i < 3; i++ {
		select {
		case v := <-got:
			assert.Equal(t, i, v)
		case <-time.After(time.Second):
			t.Fatal("event lost")
		}
	}
	bus.Close()
	assert.Zero(t, bus.Dropped())
}

func TestTypedBusPublishWaitCanceled(t *testing.T) {
	bus := NewTypedWithBuffer[int](0)
	_ = bus.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bus.PublishWait(ctx, 1), context.Canceled)
}
