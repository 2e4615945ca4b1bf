// Package pubsub distributes anonymization run events to web subscribers
// over buffered channels, with the last event of each topic replayed to new
// subscribers so late-connecting clients see the current state.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/privgraph/graphanon/pkg/logging"
)

// Topics published during an anonymization run.
const (
	// TopicRunStatus carries RunStatus phase updates.
	TopicRunStatus = "run_status"
	// TopicGraph carries GraphSummary snapshots after load and after each run.
	TopicGraph = "graph"
)

// Event is one published message.
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"`
}

// RunStatus describes the current phase of an anonymization run.
type RunStatus struct {
	Phase   string `json:"phase"` // loading, anonymizing, metrics, done, failed
	Message string `json:"message"`
	Step    int    `json:"step"`
	Total   int    `json:"total"`
}

// GraphSummary is a lightweight snapshot of the graph's shape.
type GraphSummary struct {
	Vertices  int     `json:"vertices"`
	Edges     int     `json:"edges"`
	Occupancy float64 `json:"occupancy"`
	Labelled  bool    `json:"labelled"`
}

// Subscription receives the events of one topic.
type Subscription struct {
	topic     string
	events    chan Event
	publisher *Publisher
	closeOnce sync.Once
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() string { return s.topic }

// Events returns the channel of incoming events. It is closed when the
// subscription or the publisher closes.
func (s *Subscription) Events() <-chan Event { return s.events }

// Close detaches the subscription from its publisher.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() { s.publisher.unsubscribe(s) })
}

// Publisher fans events out to topic subscribers.
type Publisher struct {
	mu            sync.Mutex
	subscriptions map[string]map[*Subscription]struct{}
	version       map[string]int
	last          map[string]Event
	closed        bool
}

// NewPublisher creates an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{
		subscriptions: make(map[string]map[*Subscription]struct{}),
		version:       make(map[string]int),
		last:          make(map[string]Event),
	}
}

// Subscribe attaches a new subscriber to topic. The topic's most recent
// event, if any, is replayed immediately. Cancelling ctx closes the
// subscription.
func (p *Publisher) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("publisher is closed")
	}

	sub := &Subscription{
		topic:     topic,
		events:    make(chan Event, 64),
		publisher: p,
	}
	if p.subscriptions[topic] == nil {
		p.subscriptions[topic] = make(map[*Subscription]struct{})
	}
	p.subscriptions[topic][sub] = struct{}{}

	if last, ok := p.last[topic]; ok {
		sub.events <- last
	}

	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub, nil
}

// Publish marshals data and delivers it to every subscriber of topic.
// Slow subscribers with a full channel drop the event rather than block
// the publishing algorithm.
func (p *Publisher) Publish(topic, eventType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling %s event: %w", topic, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("publisher is closed")
	}

	p.version[topic]++
	event := Event{
		Topic:   topic,
		Type:    eventType,
		Data:    payload,
		Version: p.version[topic],
	}
	p.last[topic] = event

	for sub := range p.subscriptions[topic] {
		select {
		case sub.events <- event:
		default:
			logging.Warn("subscriber channel full, dropping event", "topic", topic)
		}
	}
	return nil
}

// Close shuts the publisher down and closes all subscriptions.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, subs := range p.subscriptions {
		for sub := range subs {
			close(sub.events)
		}
	}
	p.subscriptions = make(map[string]map[*Subscription]struct{})
}

func (p *Publisher) unsubscribe(sub *Subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if subs := p.subscriptions[sub.topic]; subs != nil {
		if _, ok := subs[sub]; ok {
			delete(subs, sub)
			close(sub.events)
		}
		if len(subs) == 0 {
			delete(p.subscriptions, sub.topic)
		}
	}
}
