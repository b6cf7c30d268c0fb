package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/ordercraft/ordercraft/internal/domain"
)

// FileJournal implements domain.ConfirmationJournal using a JSON file.
type FileJournal struct {
	path string
	mu   sync.Mutex
}

var _ domain.ConfirmationJournal = (*FileJournal)(nil)

func New(path string) *FileJournal {
	return &FileJournal{path: path}
}

func (j *FileJournal) Record(entry domain.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(j.path, data, 0644)
}

func (j *FileJournal) Load() ([]domain.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.load()
}

func (j *FileJournal) load() ([]domain.JournalEntry, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
