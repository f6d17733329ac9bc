package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopstock/shopstock/internal/analysis/domain"
)

// decodeStrict parses a model response into the flow's declared output
// shape. Unknown fields are rejected: a response that does not match
// the schema exactly is a failed analysis.
func decodeStrict(flow, raw string, v interface{}) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &domain.Error{Flow: flow, Err: fmt.Errorf("response does not match output schema: %w", err)}
	}
	return nil
}

// requireFields fails the analysis when a declared string field came
// back empty.
func requireFields(flow string, fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return &domain.Error{Flow: flow, Err: fmt.Errorf("response is missing required field %q", name)}
		}
	}
	return nil
}
