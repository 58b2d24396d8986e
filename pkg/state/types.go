package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrETagMismatch = errors.New("state: etag mismatch")
	// ErrDecode marks snapshots that exist but cannot be decoded.
	ErrDecode = errors.New("state: decode failed")
	// ErrInvalidRef is returned for refs that cannot be mapped to a key.
	ErrInvalidRef = errors.New("state: invalid ref")
)

// Ref identifies one persisted snapshot.
type Ref struct {
	Name string
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one snapshot for a single ref.
type Store[T any] interface {
	Load(ctx context.Context, ref Ref) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error)
}

// Validatable snapshots are checked by Mutate before saving.
type Validatable interface {
	Validate() error
}

// Logger receives resolver warnings. *slog.Logger satisfies it.
type Logger interface {
	Warn(msg string, args ...any)
}

type Mutator[T any] func(*T) error

// Identifier returns the storage key for r. Names must be non-empty and must
// not contain path separators or parent references.
func (r Ref) Identifier() (string, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidRef)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: name %q must not contain path elements", ErrInvalidRef, r.Name)
	}
	return name, nil
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
