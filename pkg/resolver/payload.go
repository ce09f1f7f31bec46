package resolver

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodePayload builds a Payload from loosely typed input such as decoded JSON or
// MCP tool arguments. Unknown keys are ignored; scalar values are converted to strings.
func DecodePayload(raw map[string]any) (Payload, error) {
	var p Payload
	if len(raw) == 0 {
		return p, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return p, fmt.Errorf("failed to create payload decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return p, fmt.Errorf("invalid event payload: %w", err)
	}
	return p, nil
}
