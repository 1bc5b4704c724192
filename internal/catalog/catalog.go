package catalog

import (
	"sort"

	"latrack/internal/domain"
)

// Catalog is a read-only accessor over the criteria definition tree for one
// assessment period. The tree is owned by admins and replaced wholesale;
// commune sessions only read it.
type Catalog struct {
	criteria    []domain.Criterion
	byCriterion map[string]*domain.Criterion
	byIndicator map[string]indicatorRef
}

type indicatorRef struct {
	criterion *domain.Criterion
	indicator *domain.Indicator
}

// New builds a Catalog over the given criteria, upgrading legacy-schema
// entries in memory and ordering criteria by their declared order. The
// caller's slice and tree are never mutated.
func New(criteria []domain.Criterion) *Catalog {
	owned := make([]domain.Criterion, len(criteria))
	copy(owned, criteria)
	for i := range owned {
		owned[i].Indicators = copyIndicators(owned[i].Indicators)
		Migrate(&owned[i])
	}
	sort.SliceStable(owned, func(i, j int) bool { return owned[i].Order < owned[j].Order })

	c := &Catalog{
		criteria:    owned,
		byCriterion: make(map[string]*domain.Criterion, len(owned)),
		byIndicator: make(map[string]indicatorRef),
	}
	for i := range c.criteria {
		crit := &c.criteria[i]
		c.byCriterion[crit.ID] = crit
		for j := range crit.Indicators {
			ind := &crit.Indicators[j]
			c.byIndicator[ind.ID] = indicatorRef{criterion: crit, indicator: ind}
		}
	}
	return c
}

// copyIndicators detaches the slices Migrate rewrites, so the upgraded tree
// never shares backing arrays with the input.
func copyIndicators(indicators []domain.Indicator) []domain.Indicator {
	out := make([]domain.Indicator, len(indicators))
	copy(out, indicators)
	for i := range out {
		if out[i].Contents != nil {
			out[i].Contents = append([]domain.Content(nil), out[i].Contents...)
		}
		if out[i].SubIndicators != nil {
			out[i].SubIndicators = append([]domain.Content(nil), out[i].SubIndicators...)
		}
	}
	return out
}

// Criteria returns the criteria in display order.
func (c *Catalog) Criteria() []domain.Criterion {
	return c.criteria
}

// Criterion looks a criterion up by ID.
func (c *Catalog) Criterion(id string) (*domain.Criterion, bool) {
	crit, ok := c.byCriterion[id]
	return crit, ok
}

// Indicator looks an indicator up by ID, returning its parent criterion
// alongside it.
func (c *Catalog) Indicator(id string) (*domain.Indicator, *domain.Criterion, bool) {
	ref, ok := c.byIndicator[id]
	if !ok {
		return nil, nil, false
	}
	return ref.indicator, ref.criterion, true
}

// TotalIndicatorCount counts the assessable units: the contents of a
// composite indicator, or the indicator itself when atomic.
func (c *Catalog) TotalIndicatorCount() int {
	total := 0
	for i := range c.criteria {
		for j := range c.criteria[i].Indicators {
			ind := &c.criteria[i].Indicators[j]
			if ind.IsComposite() {
				total += len(ind.Contents)
			} else {
				total++
			}
		}
	}
	return total
}
