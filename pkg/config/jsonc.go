package config

import (
	"encoding/json"

	"github.com/tidwall/jsonc"
)

// jsoncParser is a koanf parser for JSON files that may carry comments and
// trailing commas
type jsoncParser struct{}

func (jsoncParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := json.Unmarshal(jsonc.ToJSON(b), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (jsoncParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}
