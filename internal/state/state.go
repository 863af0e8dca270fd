package state

import (
	"encoding/json"
	"os"
	"time"

	"SignalSentry/internal/model"
)

// Load reads the watch state from a JSON file. Returns a zero state if the file doesn't exist.
func Load(filePath string) (*model.WatchState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.WatchState{}, nil
		}
		return nil, err
	}
	var st model.WatchState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Save writes the watch state to a JSON file.
func Save(filePath string, st *model.WatchState) error {
	st.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
