package extract

import (
	"sort"
	"strings"

	"github.com/ayumu-h/curio"
)

// CreatorMention is one sighting of a creator name in some source.
// IsOrganization is nil when the source did not state it explicitly; the
// organization lexicon decides then.
type CreatorMention struct {
	Name           string
	Source         curio.Source
	Role           string
	IsOrganization *bool
}

// CreatorSet is the keyed accumulator that merges creator mentions from
// every source into confidence-scored entries. Identity is the trimmed
// display name; repeated names sum their per-source weights, clamped to
// [0, 1].
type CreatorSet struct {
	weights map[curio.Source]float64
	order   []string
	entries map[string]*curio.Creator
}

// NewCreatorSet creates an empty accumulator with the given per-source
// weights.
func NewCreatorSet(weights map[curio.Source]float64) *CreatorSet {
	return &CreatorSet{
		weights: weights,
		entries: make(map[string]*curio.Creator),
	}
}

// Add merges one mention: a new name opens an entry at the source weight;
// a repeated name adds the weight to the running confidence, keeps the
// first non-empty role, takes the latest explicit organization flag, and
// records the source in the provenance set.
func (s *CreatorSet) Add(m CreatorMention) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return
	}
	weight := s.weights[m.Source]

	entry, ok := s.entries[name]
	if !ok {
		isOrg := IsOrganizationName(name)
		if m.IsOrganization != nil {
			isOrg = *m.IsOrganization
		}
		s.entries[name] = &curio.Creator{
			Name:           name,
			Role:           m.Role,
			IsOrganization: isOrg,
			Confidence:     clamp01(weight),
			Sources:        []curio.Source{m.Source},
		}
		s.order = append(s.order, name)
		return
	}

	entry.Confidence = clamp01(entry.Confidence + weight)
	if entry.Role == "" {
		entry.Role = m.Role
	}
	if m.IsOrganization != nil {
		entry.IsOrganization = *m.IsOrganization
	}
	for _, src := range entry.Sources {
		if src == m.Source {
			return
		}
	}
	entry.Sources = append(entry.Sources, m.Source)
}

// Creators returns the merged entries sorted by descending confidence.
// Ties keep first-mention order.
func (s *CreatorSet) Creators() []curio.Creator {
	out := make([]curio.Creator, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.entries[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
