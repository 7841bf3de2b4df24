package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	goleak.VerifyTestMain(m)
}

func jobEvent(jobID string) models.Event {
	return models.Event{Type: models.EventJobUpdate, JobID: jobID}
}

func TestBus_DeliversInPublishOrder(t *testing.T) {
	bus := CreateBus()
	defer bus.Close()

	ch, unsubscribe := bus.Subscribe(8)
	defer unsubscribe()

	bus.Publish(jobEvent("job-1"))
	bus.Publish(jobEvent("job-2"))
	bus.Publish(jobEvent("job-3"))

	assert.Equal(t, "job-1", (<-ch).JobID)
	assert.Equal(t, "job-2", (<-ch).JobID)
	assert.Equal(t, "job-3", (<-ch).JobID)
}

func TestBus_NoReplayForLateSubscribers(t *testing.T) {
	bus := CreateBus()
	defer bus.Close()

	bus.Publish(jobEvent("before"))

	ch, unsubscribe := bus.Subscribe(8)
	defer unsubscribe()

	bus.Publish(jobEvent("after"))

	ev := <-ch
	assert.Equal(t, "after", ev.JobID)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected replayed event: %+v", extra)
	default:
	}
}

func TestBus_FullSubscriberNeverBlocksPublish(t *testing.T) {
	bus := CreateBus()
	defer bus.Close()

	ch, unsubscribe := bus.Subscribe(2)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			bus.Publish(jobEvent("flood"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	// Only the buffered events survive, nothing more.
	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Equal(t, 2, received)
			return
		}
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := CreateBus()
	defer bus.Close()

	ch, unsubscribe := bus.Subscribe(1)
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.SubscriberCount())

	// A second unsubscribe is a no-op.
	unsubscribe()
}

func TestBus_FanOutToMultipleSubscribers(t *testing.T) {
	bus := CreateBus()
	defer bus.Close()

	ch1, unsub1 := bus.Subscribe(4)
	defer unsub1()
	ch2, unsub2 := bus.Subscribe(4)
	defer unsub2()

	bus.Publish(jobEvent("fanout"))

	assert.Equal(t, "fanout", (<-ch1).JobID)
	assert.Equal(t, "fanout", (<-ch2).JobID)
}

func TestBus_ConcurrentPublishers(t *testing.T) {
	bus := CreateBus()
	defer bus.Close()

	const publishers = 8
	const perPublisher = 50

	ch, unsubscribe := bus.Subscribe(publishers * perPublisher)
	defer unsubscribe()

	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				bus.Publish(jobEvent("concurrent"))
			}
		}()
	}
	wg.Wait()

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Equal(t, publishers*perPublisher, received)
			return
		}
	}
}

func TestBus_CloseStopsDelivery(t *testing.T) {
	bus := CreateBus()

	ch, _ := bus.Subscribe(1)
	bus.Close()

	_, open := <-ch
	assert.False(t, open)

	// Publish and Subscribe after Close must not panic.
	bus.Publish(jobEvent("late"))
	lateCh, lateUnsub := bus.Subscribe(1)
	_, open = <-lateCh
	assert.False(t, open)
	lateUnsub()

	bus.Close()
}
