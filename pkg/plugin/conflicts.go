package plugin

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/goliatone/go-burnguard/pkg/i18n"
)

const conflictMarker = "unburnable"

// CheckForConflictingPlugins reports the first other loaded plugin whose name
// or title mentions "unburnable", ignoring case, and logs a warning for it.
func (p *Plugin) CheckForConflictingPlugins() (Info, bool) {
	fold := cases.Fold()
	marker := fold.String(conflictMarker)
	for _, info := range p.registry.Loaded() {
		if info.Name == Name {
			continue
		}
		if !strings.Contains(fold.String(info.Name), marker) && !strings.Contains(fold.String(info.Title), marker) {
			continue
		}
		p.logger.Warn(p.catalog.Message(i18n.ConflictWarning, "", info.Name, info.Version), "plugin", info.Name)
		p.logger.Warn(p.catalog.Message(i18n.ConflictRecommendation, "", info.Name), "plugin", info.Name)
		return info, true
	}
	return Info{}, false
}
