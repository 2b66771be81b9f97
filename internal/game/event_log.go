package game

import (
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	eventQueueSize     = 1024
	maxEventsPerSec    = 2000 // Global rate limit across all lobbies
	batchFlushInterval = 100 * time.Millisecond
)

// EventLog is a bounded, rate-limited append-only JSONL audit log shared by
// every lobby. Emits never block the simulation: when the queue is full or
// the rate limit trips, the event is counted as dropped and forgotten.
type EventLog struct {
	queue   chan Event
	limiter *rate.Limiter

	file   *os.File
	fileMu sync.Mutex

	stopChan chan struct{}
	stopOnce sync.Once
	writerWg sync.WaitGroup
	running  atomic.Bool

	totalCount   uint64 // atomic
	droppedCount uint64 // atomic
}

// NewEventLog creates an event log without opening any file.
func NewEventLog() *EventLog {
	return &EventLog{
		queue:    make(chan Event, eventQueueSize),
		limiter:  rate.NewLimiter(maxEventsPerSec, maxEventsPerSec/10),
		stopChan: make(chan struct{}),
	}
}

// Start opens the output file and launches the async writer.
// An empty path disables file output; emits still count but go nowhere.
func (el *EventLog) Start(filePath string) error {
	if el.running.Load() {
		return nil
	}

	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		el.file = file
	}

	el.running.Store(true)
	el.writerWg.Add(1)
	go el.writerLoop()
	return nil
}

// Stop flushes pending events and closes the file.
func (el *EventLog) Stop() {
	el.stopOnce.Do(func() {
		el.running.Store(false)
		close(el.stopChan)
		el.writerWg.Wait()

		el.fileMu.Lock()
		if el.file != nil {
			el.file.Close()
		}
		el.fileMu.Unlock()
	})
}

// Emit queues one event. Returns false when the log is stopped, rate limited
// or the queue is full - intentional degradation under load.
func (el *EventLog) Emit(event Event) bool {
	if !el.running.Load() {
		return false
	}
	if !el.limiter.Allow() {
		atomic.AddUint64(&el.droppedCount, 1)
		return false
	}

	select {
	case el.queue <- event:
		atomic.AddUint64(&el.totalCount, 1)
		return true
	default:
		atomic.AddUint64(&el.droppedCount, 1)
		return false
	}
}

// writerLoop batches queued events to disk on a flush interval.
func (el *EventLog) writerLoop() {
	defer el.writerWg.Done()

	ticker := time.NewTicker(batchFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-el.stopChan:
			el.flush()
			return
		case <-ticker.C:
			el.flush()
		}
	}
}

// flush drains whatever is queued right now and appends it to the file.
func (el *EventLog) flush() {
	el.fileMu.Lock()
	defer el.fileMu.Unlock()

	for {
		select {
		case event := <-el.queue:
			if el.file == nil {
				continue
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			el.file.Write(data)
			el.file.Write([]byte("\n"))
		default:
			return
		}
	}
}

// Stats returns counters for monitoring.
func (el *EventLog) Stats() map[string]uint64 {
	return map[string]uint64{
		"total":   atomic.LoadUint64(&el.totalCount),
		"dropped": atomic.LoadUint64(&el.droppedCount),
	}
}
