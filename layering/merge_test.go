package layering

import (
	"reflect"
	"slices"
	"testing"
)

type layeringSettings struct {
	Logging bool   `json:"Enable Logging"`
	Mode    string `json:"Permission Mode" layering:"fill"`
	Engine  string `json:"Rule Engine" layering:"fill"`
	Rule    string `json:"Authorization Rule"`
}

type layeringConfig struct {
	Settings  *layeringSettings `json:"Plugin Settings"`
	Protected []string          `json:"Protected Items"`
	Extra     []string          `json:"Additional Items"`
	Labels    map[string]string `json:"labels,omitempty"`
	Version   string
}

func defaultsForTest() layeringConfig {
	return layeringConfig{
		Settings:  &layeringSettings{Logging: true, Mode: "global", Engine: "expr"},
		Protected: []string{"fish.cooked", "bearmeat.cooked"},
		Extra:     []string{},
		Labels:    map[string]string{"source": "defaults"},
		Version:   "1.3.0",
	}
}

func TestMerge(t *testing.T) {
	cases := []struct {
		name   string
		strong layeringConfig
		want   layeringConfig
		filled []string
	}{
		{
			name:   "empty strong takes everything",
			strong: layeringConfig{},
			want: layeringConfig{
				Settings:  &layeringSettings{Logging: true, Mode: "global", Engine: "expr"},
				Protected: []string{"fish.cooked", "bearmeat.cooked"},
				Extra:     []string{},
				Labels:    map[string]string{"source": "defaults"},
			},
			filled: []string{"Plugin Settings", "Protected Items", "Additional Items", "labels"},
		},
		{
			name: "explicit empty slices are kept",
			strong: layeringConfig{
				Settings:  &layeringSettings{Mode: "individual", Engine: "cel"},
				Protected: []string{},
				Extra:     []string{"horsemeat.cooked"},
				Labels:    map[string]string{},
			},
			want: layeringConfig{
				Settings:  &layeringSettings{Mode: "individual", Engine: "cel"},
				Protected: []string{},
				Extra:     []string{"horsemeat.cooked"},
				Labels:    map[string]string{},
			},
		},
		{
			name: "tagged zero scalars are filled",
			strong: layeringConfig{
				Settings:  &layeringSettings{Logging: false, Rule: "true"},
				Protected: []string{"a"},
				Extra:     []string{},
				Labels:    map[string]string{},
				Version:   "",
			},
			want: layeringConfig{
				Settings:  &layeringSettings{Logging: false, Mode: "global", Engine: "expr", Rule: "true"},
				Protected: []string{"a"},
				Extra:     []string{},
				Labels:    map[string]string{},
			},
			filled: []string{"Plugin Settings.Permission Mode", "Plugin Settings.Rule Engine"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, report := Merge(tc.strong, defaultsForTest())
			if !reflect.DeepEqual(tc.want, got) {
				t.Fatalf("merged value mismatch:\nwant: %#v\n got: %#v", tc.want, got)
			}
			if !slices.Equal(report.Filled, tc.filled) {
				t.Fatalf("expected filled %v, got %v", tc.filled, report.Filled)
			}
			if report.Changed() != (len(tc.filled) > 0) {
				t.Fatalf("Changed() disagrees with Filled %v", report.Filled)
			}
		})
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	weak := defaultsForTest()
	got, _ := Merge(layeringConfig{}, weak)

	got.Protected[0] = "changed"
	got.Settings.Mode = "individual"
	got.Labels["source"] = "changed"

	if weak.Protected[0] != "fish.cooked" || weak.Settings.Mode != "global" || weak.Labels["source"] != "defaults" {
		t.Fatalf("merge result aliases the weak layer: %#v", weak)
	}
}

func TestMergeZeroInputs(t *testing.T) {
	type sample struct {
		Value int
	}
	got, report := Merge(sample{}, sample{})
	if got != (sample{}) || report.Changed() {
		t.Fatalf("expected zero result with empty report, got %+v %+v", got, report)
	}
}
