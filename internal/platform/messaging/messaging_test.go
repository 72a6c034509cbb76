package messaging

import (
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadersRoundTrip(t *testing.T) {
	h := Headers{}
	h.Set(HeaderTraceID, "trace-1").Set(HeaderEventType, "PaymentRequestCreated")

	got := h.Kafka()
	require.Equal(t, []kafka.Header{
		{Key: HeaderEventType, Value: []byte("PaymentRequestCreated")},
		{Key: HeaderTraceID, Value: []byte("trace-1")},
	}, got)

	back := NewHeaders(got)
	v, ok := back.String(HeaderTraceID)
	assert.True(t, ok)
	assert.Equal(t, "trace-1", v)

	_, ok = back.String(HeaderEventID)
	assert.False(t, ok)
}

type ping struct {
	ID int64 `json:"id"`
}

func (p *ping) Validate() error {
	if p.ID == 0 {
		return errors.New("id is empty")
	}
	return nil
}

func TestConnectEnvelope(t *testing.T) {
	b, err := EncodeConnectEnvelopeValid(&ping{ID: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"payload":{"id":42}}`, string(b))

	var p ping
	require.NoError(t, DecodeConnectEnvelopeValid(b, &p))
	assert.Equal(t, int64(42), p.ID)

	_, err = EncodeConnectEnvelopeValid(&ping{})
	require.Error(t, err)
}
