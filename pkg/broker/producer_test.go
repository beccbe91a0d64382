package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaProducerPublish(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducerWithWriter(w)

	err := p.Publish(context.Background(), "topping-1", map[string]any{"event_type": "TOPPING_CREATE"})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "topping-1", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"event_type":"TOPPING_CREATE"}`, string(w.msgs[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaProducerPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewProducerWithWriter(&recordingWriter{err: boom})

	err := p.Publish(context.Background(), "k", "v")
	assert.ErrorIs(t, err, boom)
}

func TestNewMessageRejectsUnencodable(t *testing.T) {
	_, err := NewMessage("k", make(chan int))
	assert.Error(t, err)
}
