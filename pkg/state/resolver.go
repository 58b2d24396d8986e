package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-burnguard/layering"
)

// Resolver applies load, default and validation policies over a Store.
type Resolver[T any] struct {
	Store  Store[T]
	Logger Logger
}

// Resolution reports what ResolveWithDefaults did to produce its snapshot.
type Resolution struct {
	Meta Meta
	// Created is set when no document existed and defaults were saved.
	Created bool
	// FellBack is set when the stored document could not be decoded and
	// defaults were saved in its place. Err holds the decode error.
	FellBack bool
	Err      error
	// Updated is set when missing settings were filled and the document saved.
	Updated bool
	Filled  []string
}

// Saved reports whether the resolver wrote the document.
func (r Resolution) Saved() bool {
	return r.Created || r.FellBack || r.Updated
}

// ResolveWithDefaults loads ref, falling back to defaults when the document is
// missing or unreadable and filling missing settings from defaults. Any change
// is saved back to the store.
func (r Resolver[T]) ResolveWithDefaults(ctx context.Context, ref Ref, defaults T) (T, Resolution, error) {
	var zero T
	if r.Store == nil {
		return zero, Resolution{}, fmt.Errorf("state: store is required")
	}
	if _, err := ref.Identifier(); err != nil {
		return zero, Resolution{}, err
	}

	snapshot, meta, ok, err := r.Store.Load(ctx, ref)
	switch {
	case errors.Is(err, ErrDecode):
		r.warn("state: document unreadable, using defaults", "ref", ref.Name, "error", err)
		saved, saveErr := r.Store.Save(ctx, ref, defaults, Meta{})
		if saveErr != nil {
			return zero, Resolution{}, fmt.Errorf("state: save defaults for %q: %w", ref.Name, saveErr)
		}
		return defaults, Resolution{Meta: saved, FellBack: true, Err: err}, nil
	case err != nil:
		return zero, Resolution{}, fmt.Errorf("state: load %q: %w", ref.Name, err)
	case !ok:
		saved, saveErr := r.Store.Save(ctx, ref, defaults, Meta{})
		if saveErr != nil {
			return zero, Resolution{}, fmt.Errorf("state: save defaults for %q: %w", ref.Name, saveErr)
		}
		return defaults, Resolution{Meta: saved, Created: true}, nil
	}

	merged, report := layering.Merge(snapshot, defaults)
	if !report.Changed() {
		return snapshot, Resolution{Meta: meta}, nil
	}
	saved, err := r.Store.Save(ctx, ref, merged, meta)
	if err != nil {
		return zero, Resolution{}, fmt.Errorf("state: save %q: %w", ref.Name, err)
	}
	return merged, Resolution{Meta: saved, Updated: true, Filled: report.Filled}, nil
}

// Mutate loads one snapshot, applies fn, validates the result when it
// implements Validatable, then saves. A non-empty meta.ETag must match the
// stored ETag.
func (r Resolver[T]) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator[T]) (T, Meta, error) {
	var zero T
	if r.Store == nil {
		return zero, Meta{}, fmt.Errorf("state: store is required")
	}
	if _, err := ref.Identifier(); err != nil {
		return zero, Meta{}, err
	}
	if fn == nil {
		return zero, Meta{}, fmt.Errorf("state: mutator is required")
	}

	snapshot, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return zero, Meta{}, fmt.Errorf("state: load %q: %w", ref.Name, err)
	}
	if !ok {
		snapshot = zero
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return zero, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	if err := fn(&snapshot); err != nil {
		return zero, loadedMeta, err
	}

	if err := validate(snapshot); err != nil {
		return zero, loadedMeta, err
	}

	savedMeta, err := r.Store.Save(ctx, ref, snapshot, mergeMeta(loadedMeta, meta))
	if err != nil {
		return zero, loadedMeta, fmt.Errorf("state: save %q: %w", ref.Name, err)
	}
	return snapshot, savedMeta, nil
}

func validate[T any](snapshot T) error {
	if v, ok := any(snapshot).(Validatable); ok {
		return v.Validate()
	}
	if v, ok := any(&snapshot).(Validatable); ok {
		return v.Validate()
	}
	return nil
}

func (r Resolver[T]) warn(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Warn(msg, args...)
	}
}
