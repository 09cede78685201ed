package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, 1, nil)

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), Event{
		Type:       TypeShipmentCreated,
		Key:        "se-1",
		OccurredAt: at,
		Data:       map[string]string{"carrier_id": "se-100"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "se-1", string(msg.Key))
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, TypeShipmentCreated, string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeShipmentCreated, decoded.Type)
	assert.True(t, at.Equal(decoded.OccurredAt))
	assert.NotEmpty(t, decoded.ID)
	assert.Equal(t, decoded.ID, string(msg.Headers[1].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := NewKafkaPublisher(&fakeWriter{err: errors.New("broker down")}, 1, nil)

	err := p.Publish(context.Background(), Event{Type: TypeShipmentCancelled, Key: "se-1"})
	assert.ErrorContains(t, err, "broker down")
}

func TestNew_DisabledWithoutBrokers(t *testing.T) {
	p := New(Config{Brokers: []string{""}}, nil)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), Event{}))

	p = New(Config{Brokers: []string{"localhost:9092"}, Topic: "t"}, nil)
	assert.IsType(t, &KafkaPublisher{}, p)
}
