package roadmap

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PhaseList returns the distinct, non-empty phases of items in collation order.
func PhaseList(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	phases := make([]string, 0, len(items))
	for _, item := range items {
		phase := strings.TrimSpace(item.Phase)
		if phase == "" {
			continue
		}
		if _, ok := seen[phase]; ok {
			continue
		}
		seen[phase] = struct{}{}
		phases = append(phases, phase)
	}

	// Collator keeps scratch buffers, so one per call.
	collator := collate.New(language.English)
	slices.SortStableFunc(phases, collator.CompareString)
	return phases
}

// FilterByPhase keeps items whose phase matches, case-insensitively.
// An empty phase keeps everything.
func FilterByPhase(items []Item, phase string) []Item {
	phase = strings.TrimSpace(phase)
	if phase == "" {
		return items
	}

	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Phase), phase) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
