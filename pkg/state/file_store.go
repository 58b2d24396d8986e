package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-burnguard/internal/hydrate"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a FileStore.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml (case-insensitive).
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("state: unsupported format %q", value)
	}
}

// FileStoreOption configures a FileStore.
type FileStoreOption[T any] func(*FileStore[T])

// WithDecoder replaces the payload decoder, e.g. to add normalization hooks.
func WithDecoder[T any](decoder *hydrate.Decoder[T]) FileStoreOption[T] {
	return func(s *FileStore[T]) {
		if decoder != nil {
			s.decoder = decoder
		}
	}
}

// FileStore keeps one document per ref under a directory, named
// <ref>.json or <ref>.yaml.
type FileStore[T any] struct {
	dir     string
	format  Format
	decoder *hydrate.Decoder[T]
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore[T any](dir string, format Format, opts ...FileStoreOption[T]) (*FileStore[T], error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("state: directory is required")
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("state: unsupported format %q", format)
	}
	s := &FileStore[T]{
		dir:     dir,
		format:  format,
		decoder: hydrate.NewDecoder[T](),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Path returns the file backing ref.
func (s *FileStore[T]) Path(ref Ref) (string, error) {
	key, err := ref.Identifier()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key+"."+string(s.format)), nil
}

func (s *FileStore[T]) Load(_ context.Context, ref Ref) (T, Meta, bool, error) {
	var zero T
	path, err := s.Path(ref)
	if err != nil {
		return zero, Meta{}, false, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return zero, Meta{}, false, nil
	}
	if err != nil {
		return zero, Meta{}, false, fmt.Errorf("state: read %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return zero, Meta{}, false, fmt.Errorf("state: stat %s: %w", path, err)
	}

	payload := map[string]any{}
	switch s.format {
	case FormatYAML:
		err = yaml.Unmarshal(raw, &payload)
	default:
		err = json.Unmarshal(raw, &payload)
	}
	if err != nil {
		return zero, Meta{}, false, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	snapshot, err := s.decoder.Decode(hydrate.Context{Name: ref.Name, Source: path}, payload)
	if err != nil {
		return zero, Meta{}, false, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return snapshot, stamp(Meta{}, raw, info.ModTime()), true, nil
}

// Save writes snapshot through a temporary file and renames it into place.
func (s *FileStore[T]) Save(_ context.Context, ref Ref, snapshot T, meta Meta) (Meta, error) {
	path, err := s.Path(ref)
	if err != nil {
		return Meta{}, err
	}
	encoded, err := s.encode(snapshot)
	if err != nil {
		return Meta{}, fmt.Errorf("state: encode %s: %w", path, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Meta{}, fmt.Errorf("state: create %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return Meta{}, fmt.Errorf("state: write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return Meta{}, fmt.Errorf("state: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return Meta{}, fmt.Errorf("state: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Meta{}, fmt.Errorf("state: write %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Meta{}, fmt.Errorf("state: stat %s: %w", path, err)
	}
	return stamp(meta, encoded, info.ModTime()), nil
}

func (s *FileStore[T]) encode(snapshot T) ([]byte, error) {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, err
	}
	if s.format == FormatJSON {
		return append(data, '\n'), nil
	}

	// JSON is valid YAML; going through a node keeps the json tag names and
	// field order of T.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
