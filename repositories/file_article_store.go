package repositories

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"aavm-dashboard/models"
)

// FileArticleStore mirrors the dashboard payload as a JSON document on
// disk. It is the read fallback when the durable store is unreachable;
// successful reads from the store refresh the snapshot.
type FileArticleStore struct {
	mu   sync.Mutex
	path string
}

func NewFileArticleStore(path string) *FileArticleStore {
	return &FileArticleStore{path: path}
}

func (s *FileArticleStore) Read() (*models.DashboardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.DashboardResponse{
				Articles:    []models.Article{},
				LastUpdated: time.Time{},
			}, nil
		}
		return nil, err
	}

	var snapshot models.DashboardResponse
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *FileArticleStore) Write(snapshot *models.DashboardResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
