package config

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-burnguard/internal/hydrate"
	"github.com/goliatone/go-burnguard/pkg/state"
)

// NewDecoder returns the payload decoder for configuration documents. Keys
// missing from "Plugin Settings" take their default values and item
// identifiers are trimmed.
func NewDecoder() *hydrate.Decoder[Configuration] {
	return hydrate.NewDecoder[Configuration](
		hydrate.WithPreHook[Configuration](fillSettingKeys),
		hydrate.WithPostHook[Configuration](trimItems),
	)
}

// NewFileStore returns a file store for configuration documents under dir.
func NewFileStore(dir string, format state.Format) (*state.FileStore[Configuration], error) {
	return state.NewFileStore[Configuration](dir, format, state.WithDecoder(NewDecoder()))
}

func fillSettingKeys(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	settings, ok := payload["Plugin Settings"].(map[string]any)
	if !ok {
		return payload, nil
	}
	raw, err := json.Marshal(Defaults().Settings)
	if err != nil {
		return nil, err
	}
	defaults := map[string]any{}
	if err := json.Unmarshal(raw, &defaults); err != nil {
		return nil, err
	}
	for key, value := range defaults {
		if _, present := settings[key]; !present {
			settings[key] = value
		}
	}
	return payload, nil
}

func trimItems(_ hydrate.Context, cfg *Configuration) error {
	for _, list := range [][]string{cfg.ProtectedItems, cfg.AdditionalItems, cfg.ExcludedItems} {
		for i, id := range list {
			list[i] = strings.TrimSpace(id)
		}
	}
	return nil
}
