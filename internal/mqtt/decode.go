package mqtt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"arc-touch-go/internal/config"
)

// Decode reads a JSON object of settings. Keys are names ("lang") or
// numeric IDs ("1853"); values are integers, strings or booleans. Unknown
// keys are skipped so a newer companion app can send more.
func Decode(payload []byte) (config.Message, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	m := make(config.Message, len(raw))
	for name, v := range raw {
		k, ok := config.KeyByName(name)
		if !ok {
			continue
		}
		switch v := v.(type) {
		case json.Number:
			n, err := v.Int64()
			if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
				return nil, fmt.Errorf("%v: %w: %s", k, config.ErrInvalidValue, v)
			}
			m[k] = config.Int(int32(n))
		case string:
			m[k] = config.String(v)
		case bool:
			if v {
				m[k] = config.Int(1)
			} else {
				m[k] = config.Int(0)
			}
		default:
			return nil, fmt.Errorf("%v: %w: %T", k, config.ErrInvalidValue, v)
		}
	}
	return m, nil
}
