package persist

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// JSON keeps every key in a single json document on disk.
// The whole file is rewritten on each Set.
type JSON struct {
	file   string
	mu     sync.Mutex
	logger *zap.Logger
}

var _ KV = &JSON{}

func InJSON(file string) *JSON {
	return &JSON{file: file, logger: zap.NewNop()}
}

// WithLogger sets where recovered corrupt documents are reported.
func (j *JSON) WithLogger(logger *zap.Logger) *JSON {
	if logger != nil {
		j.logger = logger
	}
	return j
}

func corrupt(err error) bool {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(err, &syntax) || errors.As(err, &typ)
}

func (j *JSON) read() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	bs, err := os.ReadFile(j.file)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(bs, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (j *JSON) Get(_ context.Context, key string) ([]byte, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	doc, err := j.read()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Set stores value under key. value must be valid json.
func (j *JSON) Set(_ context.Context, key string, value []byte) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	doc, err := j.read()
	if corrupt(err) {
		// the unreadable document is kept next to the file and writing starts over
		j.logger.Warn("store file is corrupt, starting a new one",
			zap.String("file", j.file), zap.String("moved_to", j.file+".corrupt"), zap.Error(err))
		if err := os.Rename(j.file, j.file+".corrupt"); err != nil {
			return err
		}
		doc, err = map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return err
	}
	if !json.Valid(value) {
		return errors.New("value is not valid json")
	}
	doc[key] = value
	bs, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(j.file); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(j.file, bs, 0660)
}

func (j *JSON) Close() error {
	return nil
}
