package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmaresco/cellarscan/constants"
)

// StripCodeFence removes a Markdown code-fence wrapper if the model added one
// despite instructions ("```json\n...\n```" or plain "```").
func StripCodeFence(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```")
	if idx := strings.Index(out, "\n"); idx >= 0 {
		// drop the language tag line ("json", "JSON", or empty)
		out = out[idx+1:]
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

// SanitizeFields normalizes a decoded model reply ahead of strict schema
// validation:
//   - removes unknown keys (additionalProperties = false friendliness)
//   - drops fields that are not {value, confidence} objects
//   - coerces numeric and list values to strings, trims empties
//   - clamps confidence into [0,1], drops fields with no usable confidence
//   - canonicalizes the wine type and drops out-of-enum values
//
// The dropped list names every removal for the anomaly log.
func SanitizeFields(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	out := make(map[string]any, len(m))

	for key, v := range m {
		if !constants.IsExtractionField(key) {
			dropped = append(dropped, key+"(unknown)")
			continue
		}

		obj, ok := v.(map[string]any)
		if !ok {
			dropped = append(dropped, key+"(shape)")
			continue
		}

		value, ok := coerceValue(obj["value"], key)
		if !ok {
			dropped = append(dropped, key+"(value)")
			continue
		}

		conf, ok := obj["confidence"].(float64)
		if !ok {
			dropped = append(dropped, key+"(confidence)")
			continue
		}
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}

		if key == constants.FieldType {
			t, known := constants.CanonicalizeWineType(value)
			if !known {
				dropped = append(dropped, key+"(enum)")
				continue
			}
			value = string(t)
		}

		out[key] = map[string]any{"value": value, "confidence": conf}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.interpret.sanitize", "dropped", dropped)
	}
	return b, dropped, nil
}

// coerceValue turns the model's value into a trimmed string: numbers are
// formatted (vintage as a bare integer), string lists are comma-joined.
func coerceValue(v any, key string) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		if key == constants.FieldVintage || t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t)), true
		}
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", t), "0"), "."), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return "", false
			}
			s = strings.TrimSpace(s)
			if s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), len(parts) > 0
	default:
		return "", false
	}
}
