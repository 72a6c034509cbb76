package messaging

import (
	"sort"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventID       = "event_id"
	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
	HeaderTraceID       = "trace_id"
	HeaderRouteKey      = "route_key"
)

type Headers map[string][]byte

func NewHeaders(headers []kafka.Header) Headers {
	m := make(Headers, len(headers))
	for _, h := range headers {
		m[h.Key] = h.Value
	}
	return m
}

func (h Headers) String(key string) (string, bool) {
	v, ok := h[key]
	if !ok {
		return "", false
	}
	return string(v), true
}

func (h Headers) Set(key, value string) Headers {
	h[key] = []byte(value)
	return h
}

// Kafka returns the headers in key order so messages are reproducible.
func (h Headers) Kafka() []kafka.Header {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		out = append(out, kafka.Header{Key: k, Value: h[k]})
	}
	return out
}
