package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lumoswallet/go-sdk/types"
	"github.com/mitchellh/mapstructure"
)

const stateFile = "state.json"

type fileStore struct {
	filePath string
	lock     *sync.Mutex
}

func NewAccountRepository(baseDir string) (types.AccountRepository, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("missing base directory")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to open account store: %s", err)
	}
	return &fileStore{
		filePath: filepath.Join(baseDir, stateFile),
		lock:     &sync.Mutex{},
	}, nil
}

func (s *fileStore) GetType() string {
	return types.FileStore
}

func (s *fileStore) AddState(_ context.Context, state types.AccountState) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	buf, err := json.MarshalIndent(encode(state).asMap(), "", "  ")
	if err != nil {
		return err
	}

	// Write-then-rename keeps a crash from leaving a torn file behind.
	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, buf, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}

func (s *fileStore) GetState(_ context.Context) (*types.AccountState, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	buf, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	raw := map[string]any{}
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("failed to read account store: %s", err)
	}

	var data stateData
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &data,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to read account store: %s", err)
	}

	if data.isEmpty() {
		return nil, nil
	}

	state := data.decode()
	return &state, nil
}

func (s *fileStore) CleanState(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clean account store: %s", err)
	}
	return nil
}

func (s *fileStore) Close() {}
