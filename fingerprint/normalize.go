package fingerprint

import (
	"encoding/json"
	"time"
)

// Normalize coerces an externally supplied payload into the canonical
// [Fingerprint] shape. Missing or mistyped fields are replaced with safe
// defaults (empty string, empty slice, false, zero) instead of rejecting the
// whole object; only a payload that is not a JSON object at all yields nil.
//
// This is shape normalization, not authentication: the supplied hash is
// carried through as-is and must never be trusted as an access-control input.
func Normalize(data []byte) *Fingerprint {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return NormalizeMap(raw)
}

// NormalizeMap is [Normalize] for payloads that are already decoded.
func NormalizeMap(raw map[string]any) *Fingerprint {
	if raw == nil {
		return nil
	}

	fp := Fingerprint{
		Hash: asString(raw["fingerprint"]),
	}

	if ts, err := time.Parse(time.RFC3339, asString(raw["timestamp"])); err == nil {
		fp.Timestamp = ts
	}

	components, _ := raw["components"].(map[string]any)
	fp.Components = normalizeComponents(components)

	return &fp
}

func normalizeComponents(raw map[string]any) Components {
	if raw == nil {
		return Components{Fonts: []string{}, IPAddresses: []string{}}
	}

	return Components{
		UserAgent:           asString(raw["userAgent"]),
		Platform:            asString(raw["platform"]),
		Language:            asString(raw["language"]),
		ScreenResolution:    asString(raw["screenResolution"]),
		ColorDepth:          asInt(raw["colorDepth"]),
		Timezone:            asString(raw["timezone"]),
		HardwareConcurrency: asInt(raw["hardwareConcurrency"]),
		DeviceMemory:        asInt(raw["deviceMemory"]),
		WebGLVendor:         asString(raw["webglVendor"]),
		WebGLRenderer:       asString(raw["webglRenderer"]),
		Fonts:               asStringSlice(raw["fonts"]),
		LocalStorage:        asBool(raw["localStorage"]),
		SessionStorage:      asBool(raw["sessionStorage"]),
		IndexedDB:           asBool(raw["indexedDB"]),
		AudioContext:        asBool(raw["audioContext"]),
		IPAddresses:         asStringSlice(raw["ipAddresses"]),
		NetworkQuality:      asString(raw["networkQuality"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
