// Package journal records every workflow transition as an event in the
// JetStream stream and rebuilds the workflow by replaying those events.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/dmflow/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// Event is a single entry in the workflow event log.
type Event struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Workflow  string          `json:"workflow"`
	Type      string          `json:"type"`   // post, trigger, reply, step, live, comment
	Action    string          `json:"action"` // select, pattern, mode, set, next, previous, go, add
	Meta      json.RawMessage `json:"meta,omitempty"`
	Data      string          `json:"data"`
}

// Recorder is implemented by anything that can append workflow changes.
type Recorder interface {
	Record(ctx context.Context, workflow string, change Change) error
}

// Store manages workflow events in JetStream.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a new Store instance with the given JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{
		js:     js,
		stream: stream,
	}
}

// PublishEvent appends an event to the log under dmflow.{workflow}.{type}.
func (s *Store) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Workflow, event.Type)
	logger.Debug("Publishing event: workflow=%s type=%s action=%s", event.Workflow, event.Type, event.Action)

	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	return ack, nil
}

// Record publishes change as an event of workflow.
func (s *Store) Record(ctx context.Context, workflow string, change Change) error {
	event, err := change.event(workflow)
	if err != nil {
		return err
	}
	_, err = s.PublishEvent(ctx, event)
	return err
}

// LoadState rebuilds a workflow by reducing all of its events in order.
// A workflow with no events yields an empty snapshot.
func (s *Store) LoadState(ctx context.Context, workflow string, opts Options) (*Snapshot, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForWorkflow(workflow),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		logger.Error("Failed to create consumer for workflow %s: %v", workflow, err)
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	snap := NewSnapshot(workflow, opts)

	const batchSize = 1000
	malformed := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				malformed++
				logger.Warn("Skipping malformed event on %s: %v", msg.Subject(), err)
				_ = msg.Ack()
				continue
			}
			snap.Apply(event)
			_ = msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed events while loading %s", malformed, workflow)
	}

	logger.Debug("State loaded: workflow=%s events=%d step=%s", workflow, snap.Events, snap.State.Step)
	return snap, nil
}

// Commit records change for snap's workflow and, once stored, applies it to
// snap.
func (s *Store) Commit(ctx context.Context, snap *Snapshot, change Change) error {
	event, err := change.event(snap.Workflow)
	if err != nil {
		return err
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if _, err := s.PublishEvent(ctx, event); err != nil {
		return err
	}
	snap.Apply(event)
	return nil
}
