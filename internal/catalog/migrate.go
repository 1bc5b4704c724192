package catalog

import (
	"latrack/internal/domain"
)

// Migrate upgrades a criterion to the current catalog schema version. One
// idempotent step exists per version bump; running Migrate on an
// already-current criterion changes nothing. It returns the number of
// versions applied.
func Migrate(crit *domain.Criterion) int {
	applied := 0
	if crit.SchemaVersion < 1 {
		crit.SchemaVersion = 1
	}
	if crit.SchemaVersion < 2 {
		migrateV2(crit)
		crit.SchemaVersion = 2
		applied++
	}
	return applied
}

// migrateV2 folds the legacy subIndicators field into contents, fills the
// parent criterion backlink and drops duplicate content IDs left behind by
// earlier flatten/un-flatten passes.
func migrateV2(crit *domain.Criterion) {
	for i := range crit.Indicators {
		ind := &crit.Indicators[i]

		if len(ind.Contents) == 0 && len(ind.SubIndicators) > 0 {
			ind.Contents = ind.SubIndicators
		}
		ind.SubIndicators = nil

		if ind.ParentCriterionID == "" {
			ind.ParentCriterionID = crit.ID
		}

		if len(ind.Contents) > 1 {
			ind.Contents = dedupeContents(ind.Contents)
		}
	}
}

func dedupeContents(contents []domain.Content) []domain.Content {
	seen := make(map[string]bool, len(contents))
	out := contents[:0]
	for _, c := range contents {
		if c.ID != "" && seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
