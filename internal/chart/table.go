// Package chart serves the static mock chart API payloads. The table is
// parsed once from an embedded fixture at startup and is read-only after.
package chart

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed responses.yaml
var rawResponses []byte

// Response is the fixed envelope returned for every chart id.
type Response struct {
	Success bool           `json:"success" yaml:"success"`
	Data    map[string]any `json:"data" yaml:"data"`
	Error   *string        `json:"error" yaml:"error"`
}

// Table maps chart ids to their canned responses.
type Table map[string]Response

// LoadTable parses the embedded fixture.
func LoadTable() (Table, error) {
	var t Table
	if err := yaml.Unmarshal(rawResponses, &t); err != nil {
		return nil, fmt.Errorf("chart: parse responses: %w", err)
	}
	return t, nil
}

// Lookup returns the response for id and whether it is known.
func (t Table) Lookup(id string) (Response, bool) {
	r, ok := t[id]
	return r, ok
}

// NotFound builds the error envelope for an unknown chart id.
func NotFound(id string) Response {
	msg := fmt.Sprintf("Chart '%s' not found", id)
	return Response{Success: false, Error: &msg}
}
