package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/jobscan/internal/models"
)

var ErrPathRequired = errors.New("seen history path is required")

// Read loads a JSON array of titles. A missing or empty file is an empty
// history.
func Read(path string) ([]models.JobTitle, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.JobTitle{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.JobTitle{}, nil
	}

	var history []models.JobTitle
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if history == nil {
		history = []models.JobTitle{}
	}
	return history, nil
}

// Write stores history as indented JSON, creating the parent directory.
func Write(path string, history []models.JobTitle) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathRequired
	}
	if history == nil {
		history = []models.JobTitle{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
