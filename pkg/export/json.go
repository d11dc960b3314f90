package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hexfoundry/planroom/pkg/layout"
)

// WriteJSON persists a result as indented JSON.
func WriteJSON(path string, res *layout.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// ReadJSON loads a previously persisted result.
func ReadJSON(path string) (*layout.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding result %s: %w", path, err)
	}
	return &res, nil
}
