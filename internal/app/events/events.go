package events

import (
	"sync"

	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
	"go.uber.org/zap"
)

const defaultBuffer = 64

// Bus is an in-process fan-out channel between the archive pipeline and any
// number of observers. Publishing never blocks: a subscriber whose buffer is
// full loses that event. There is no replay; late subscribers must query
// current job state to catch up.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan models.Event
	closed bool
}

func CreateBus() *Bus {
	return &Bus{
		subs: make(map[int]chan models.Event),
	}
}

// Subscribe registers a new subscriber and returns its receive channel and
// an unsubscribe function. The channel is closed on unsubscribe or bus
// shutdown. A non-positive buffer falls back to the default.
func (b *Bus) Subscribe(buffer int) (<-chan models.Event, func()) {
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	ch := make(chan models.Event, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// Publish delivers the event to every current subscriber without blocking.
func (b *Bus) Publish(ev models.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for id, sub := range b.subs {
		select {
		case sub <- ev:
		default:
			logger.Debug("event dropped for slow subscriber",
				zap.String("function", "Bus.Publish"),
				zap.Int("subscriber_id", id),
				zap.String("event_type", string(ev.Type)),
				zap.String("job_id", ev.JobID),
			)
		}
	}
}

// SubscriberCount reports how many subscribers are currently registered.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

// Close closes all subscriber channels and rejects further publishes.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub)
	}
}
