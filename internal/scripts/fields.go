package scripts

import (
	"encoding/json"
	"fmt"
)

// EncodeFields serializes POST fields as a JSON object. Keys come out sorted.
func EncodeFields(fields map[string]string) (string, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	return string(raw), nil
}

// DecodeFields parses a JSON object of string values back into a field mapping.
func DecodeFields(text string) (map[string]string, error) {
	var fields map[string]string
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}
