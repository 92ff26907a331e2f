package events

import (
	"context"
	"sync"
)

// Dispatcher асинхронно передает события публикатору через буферизированную очередь.
// Emit никогда не блокирует: при переполненной очереди событие отбрасывается с записью в лог.
type Dispatcher struct {
	publisher Publisher
	log       Logger
	queue     chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher создает диспетчер и запускает фоновую отправку
func NewDispatcher(publisher Publisher, bufferSize int, log Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	d := &Dispatcher{
		publisher: publisher,
		log:       log,
		queue:     make(chan Event, bufferSize),
		done:      make(chan struct{}),
	}

	go d.run()

	return d
}

// Emit ставит событие в очередь на отправку
func (d *Dispatcher) Emit(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Events: dispatcher closed, event %s (%s) dropped", event.ID, event.Type)
		return
	}

	select {
	case d.queue <- event:
	default:
		d.log.Warn("Events: queue is full, event %s (%s) dropped", event.ID, event.Type)
	}
}

// Close перестает принимать события и ждет отправки уже поставленных в очередь
// либо отмены ctx
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.queue {
		if err := d.publisher.Publish(context.Background(), event); err != nil {
			d.log.Error("Events: failed to publish %s (%s): %v", event.ID, event.Type, err)
		}
	}
}
