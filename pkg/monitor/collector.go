// Package monitor observes scenario runs. An EventCollector
// plugs into the runner as an event sink, a Dashboard folds the
// events into per-case state, and a Server streams both to
// WebSocket clients.
package monitor

import (
	"sync"
	"time"

	"digital.vasic.corespec/pkg/scenario"
)

// EventCollector captures runner events and timing data. It is
// safe for concurrent use.
type EventCollector struct {
	mu       sync.RWMutex
	events   []scenario.Event
	handlers []func(scenario.Event)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics over terminal
// case events.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Errored   int           `json:"errored"`
	Skipped   int           `json:"skipped"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]scenario.Event, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(scenario.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Sink returns the collector as a runner event sink.
func (c *EventCollector) Sink() scenario.EventSink {
	return c.Emit
}

// Emit records an event and notifies all handlers.
func (c *EventCollector) Emit(event scenario.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	if event.Type == scenario.EventCaseFinished ||
		event.Type == scenario.EventCaseSkipped {
		c.stats.Total++
		switch event.Status {
		case scenario.StatusPassed:
			c.stats.Passed++
		case scenario.StatusFailed:
			c.stats.Failed++
		case scenario.StatusErrored:
			c.stats.Errored++
		case scenario.StatusSkipped:
			c.stats.Skipped++
		}
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(scenario.Event), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []scenario.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]scenario.Event, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics. Handlers
// stay registered.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
