package dispatch

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/zenik/zenik/internal/feature"
)

// maxSuggestDistance caps the edit distance offered as a "did you mean"
// hint. Shorter inputs get a proportionally smaller budget.
const maxSuggestDistance = 2

// suggest returns enabled identifiers close to id, nearest first. Numeric
// input is a menu position, not a misspelling, and gets no hints.
func suggest(id string, set feature.EnabledSet) []string {
	needle := strings.ToLower(strings.TrimSpace(id))
	if needle == "" {
		return nil
	}
	if _, err := strconv.Atoi(needle); err == nil {
		return nil
	}
	limit := min(len(needle)/2, maxSuggestDistance)

	type candidate struct {
		id   string
		dist int
	}
	var cands []candidate
	for _, m := range set.Modules() {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(m.ID))
		if strings.HasPrefix(strings.ToLower(m.ID), needle) {
			dist = 0
		}
		if dist <= limit {
			cands = append(cands, candidate{id: m.ID, dist: dist})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })

	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.id)
	}
	return out
}
