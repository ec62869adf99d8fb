package fileslotrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"insightflow/internal/models"
)

const pkg = "fileSlotRepo/"

// repository keeps all slots in one JSON object file.
type repository struct {
	path string
	mu   sync.Mutex
}

func New(path string) (*repository, error) {
	op := pkg + "New"

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &repository{path: path}, nil
}

func (r *repository) Get(_ context.Context, key string) (string, error) {
	op := pkg + "Get"

	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	value, ok := slots[key]
	if !ok {
		return "", models.ErrSlotNotFound
	}

	return value, nil
}

func (r *repository) Set(_ context.Context, key string, value string) error {
	op := pkg + "Set"

	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	slots[key] = value

	if err := r.save(slots); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) Del(_ context.Context, keys ...string) error {
	op := pkg + "Del"

	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, key := range keys {
		delete(slots, key)
	}

	if err := r.save(slots); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) load() (map[string]string, error) {
	slots := make(map[string]string)

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return slots, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return slots, nil
	}

	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, err
	}

	return slots, nil
}

// save writes through a temp file so a crash never leaves a torn file.
func (r *repository) save(slots map[string]string) error {
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, r.path)
}
