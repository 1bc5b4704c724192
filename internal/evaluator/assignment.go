package evaluator

import (
	"latrack/internal/domain"
)

// AssignmentSpec is the admin-side assignment configuration of an indicator
// or criterion.
type AssignmentSpec struct {
	Type              domain.AssignmentType
	AssignedDocsCount int
	Documents         []domain.AssignedDocument
}

// Assignment is the resolved assignment context for one commune: the
// concrete document slots to fill and the count that must be met.
type Assignment struct {
	Type          domain.AssignmentType
	DocsToRender  []domain.AssignedDocument
	AssignedCount int
	// DeclaredCount is how many documents the commune itself has declared,
	// used when the admin left the count open.
	DeclaredCount int
}

// ResolveAssignment reconciles admin-specified specifics, admin-specified
// quantities and commune self-declared quantities into the document slots
// a commune must produce. Slots are keyed by index and resolution never
// reorders or drops previously entered per-slot data: resizing pads with
// placeholders and truncates only the rendered view.
func ResolveAssignment(spec AssignmentSpec, rec *domain.IndicatorValue, defaultDeadlineDays int) Assignment {
	if spec.Type == domain.AssignmentSpecific {
		docs := spec.Documents
		if docs == nil {
			docs = []domain.AssignedDocument{}
		}
		return Assignment{
			Type:          domain.AssignmentSpecific,
			DocsToRender:  docs,
			AssignedCount: len(docs),
		}
	}

	var communeDocs []domain.AssignedDocument
	declared := 0
	if rec != nil {
		communeDocs = rec.CommuneDefinedDocuments
		if n, ok := toFloat(rec.Value); ok && n > 0 {
			declared = int(n)
		} else {
			declared = len(communeDocs)
		}
	}

	slots := spec.AssignedDocsCount
	if slots <= 0 {
		// Admin left the count open: the commune states it.
		slots = declared
	}

	docs := make([]domain.AssignedDocument, slots)
	for i := 0; i < slots; i++ {
		if i < len(communeDocs) {
			docs[i] = communeDocs[i]
		} else {
			docs[i] = domain.AssignedDocument{IssuanceDeadlineDays: defaultDeadlineDays}
		}
	}

	assignedCount := spec.AssignedDocsCount
	if assignedCount == 0 {
		assignedCount = len(docs)
	}

	return Assignment{
		Type:          domain.AssignmentQuantity,
		DocsToRender:  docs,
		AssignedCount: assignedCount,
		DeclaredCount: declared,
	}
}

// ResizeDocuments grows or shrinks a commune's declared document list to n
// slots, preserving existing entries by index. Growing pads with empty
// placeholders; shrinking truncates from the tail only.
func ResizeDocuments(existing []domain.AssignedDocument, n, defaultDeadlineDays int) []domain.AssignedDocument {
	if n < 0 {
		n = 0
	}
	resized := make([]domain.AssignedDocument, n)
	for i := 0; i < n; i++ {
		if i < len(existing) {
			resized[i] = existing[i]
		} else {
			resized[i] = domain.AssignedDocument{IssuanceDeadlineDays: defaultDeadlineDays}
		}
	}
	return resized
}
