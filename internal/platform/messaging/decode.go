package messaging

import (
	"encoding/json"

	"github.com/cicconee/payouts/internal/platform/codec"
)

// Messages carry their payload inside {"payload": ...}, the same shape a
// Kafka Connect outbox relay produces, so consumers read either source.
type envelope struct {
	Payload json.RawMessage `json:"payload"`
}

func EncodeConnectEnvelopeValid(v codec.Validater) ([]byte, error) {
	b, err := codec.EncodeValid(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Payload: b})
}

func DecodeConnectEnvelopeValid(b []byte, v codec.Validater) error {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	return codec.DecodeValid(env.Payload, v)
}
