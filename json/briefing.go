package json

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/execai"
)

// LoadBriefing reads a Briefing from a JSON file using the same field names
// as the dashboard's task, calendar and inbox records.
func LoadBriefing(path string) (execai.Briefing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return execai.Briefing{}, fmt.Errorf("read file: %w", err)
	}
	var b execai.Briefing
	if err := json.Unmarshal(data, &b); err != nil {
		return execai.Briefing{}, fmt.Errorf("unmarshal briefing: %w", err)
	}
	return b, nil
}
