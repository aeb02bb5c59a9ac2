package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// ErrMissingField reports a result file missing one of its required
// sections.
var ErrMissingField = errors.New("missing required field")

// Extract flattens parsed evaluation results into a single record.
// The config_general object provides the base fields and every entry
// of results.all is merged on top. A task name that collides with a
// config field wins the slot; the collision is logged against source.
func Extract(raw map[string]any, source string) (Record, error) {
	general, ok := raw["config_general"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: config_general", ErrMissingField)
	}
	results, ok := raw["results"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: results", ErrMissingField)
	}
	all, ok := results["all"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: results.all", ErrMissingField)
	}

	rec := make(Record, len(general)+len(all))
	for k, v := range general {
		rec[k] = v
	}
	for task, score := range all {
		if _, exists := rec[task]; exists {
			slog.Warn("score field overwrites config field", "file", source, "field", task)
		}
		rec[task] = score
	}
	return rec, nil
}

// ExtractFile reads and flattens a single result file.
func ExtractFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return Extract(raw, path)
}
