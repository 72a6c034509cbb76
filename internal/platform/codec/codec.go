package codec

import (
	"encoding/json"
	"fmt"
)

// Validater is implemented by every payload that crosses a process boundary.
type Validater interface {
	Validate() error
}

// EncodeValid refuses to marshal a payload that fails its own validation.
func EncodeValid(v Validater) ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}

	return json.Marshal(v)
}

func DecodeValid(b []byte, v Validater) error {
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return v.Validate()
}
