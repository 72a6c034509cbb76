package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notice struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
}

func (n *notice) Validate() error {
	if n.ID <= 0 {
		return errors.New("id must be > 0")
	}
	if n.Kind == "" {
		return errors.New("kind is empty")
	}
	return nil
}

func TestEncodeValidRejectsInvalidPayload(t *testing.T) {
	_, err := EncodeValid(&notice{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind is empty")
}

func TestDecodeValid(t *testing.T) {
	var n notice
	require.NoError(t, DecodeValid([]byte(`{"id":7,"kind":"created"}`), &n))
	assert.Equal(t, notice{ID: 7, Kind: "created"}, n)

	require.Error(t, DecodeValid([]byte(`{"id":0,"kind":"created"}`), &notice{}))
	require.Error(t, DecodeValid([]byte(`{`), &notice{}))
}
