package domain

// CatalogSchemaVersion is the current schema version for stored criteria.
// Criteria persisted with an older version are upgraded in memory by
// catalog.Migrate before use.
const CatalogSchemaVersion = 2

// AssignedDocument is one document or plan a commune must produce for an
// assignment-checked indicator. Dates use the dd/mm/yyyy convention of the
// issuing decisions.
type AssignedDocument struct {
	Name                 string `json:"name"`
	IssueDate            string `json:"issueDate"`
	Excerpt              string `json:"excerpt"`
	IssuanceDeadlineDays int    `json:"issuanceDeadlineDays"`
}

// Threshold is a structured comparator replacing free-text standard levels
// such as ">= 80%". Operator is one of ">=", ">", "<=", "<", "==".
type Threshold struct {
	Operator string  `json:"operator"`
	Value    float64 `json:"value"`
}

// Content is a gradable sub-requirement within a composite indicator. It is
// evaluated independently with the same InputType vocabulary as an indicator
// and rolled up into the indicator status.
type Content struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	StandardLevel       string     `json:"standardLevel,omitempty"`
	InputType           InputType  `json:"inputType"`
	EvidenceRequirement string     `json:"evidenceRequirement,omitempty"`
	Threshold           *Threshold `json:"threshold,omitempty"`
	CheckboxOptions     []string   `json:"checkboxOptions,omitempty"`
	MinChecked          int        `json:"minChecked,omitempty"`
}

// Indicator is a gradable requirement within a criterion. A non-empty
// Contents slice makes it composite: its own value, files and status are
// derived from the content results and never entered directly.
type Indicator struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Description         string             `json:"description,omitempty"`
	StandardLevel       string             `json:"standardLevel,omitempty"`
	InputType           InputType          `json:"inputType"`
	EvidenceRequirement string             `json:"evidenceRequirement,omitempty"`
	AssignmentType      AssignmentType     `json:"assignmentType,omitempty"`
	AssignedDocsCount   int                `json:"assignedDocumentsCount,omitempty"`
	Documents           []AssignedDocument `json:"documents,omitempty"`
	Contents            []Content          `json:"contents,omitempty"`
	Threshold           *Threshold         `json:"threshold,omitempty"`
	CheckboxOptions     []string           `json:"checkboxOptions,omitempty"`
	MinChecked          int                `json:"minChecked,omitempty"`
	ParentCriterionID   string             `json:"parentCriterionId,omitempty"`

	// Legacy fields from pre-v2 catalogs, upgraded by catalog.Migrate.
	// OriginalParentIndicatorID links a flattened sub-indicator back to its
	// pre-flattening logical parent and is informational only.
	OriginalParentIndicatorID string    `json:"originalParentIndicatorId,omitempty"`
	SubIndicators             []Content `json:"subIndicators,omitempty"`
}

// IsComposite reports whether the indicator aggregates content results.
func (ind *Indicator) IsComposite() bool {
	return len(ind.Contents) > 0
}

// RequiresEvidence reports whether an explicit evidence requirement is
// configured on the indicator.
func (ind *Indicator) RequiresEvidence() bool {
	return ind.EvidenceRequirement != ""
}

// RequiresEvidence reports whether an explicit evidence requirement is
// configured on the content.
func (c *Content) RequiresEvidence() bool {
	return c.EvidenceRequirement != ""
}

// Criterion is a top-level grading category containing indicators.
// AssignmentType and Documents apply only to criteria with document-issuance
// semantics (the first criterion in the provincial catalog).
type Criterion struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Order             int                `json:"order"`
	AssignmentType    AssignmentType     `json:"assignmentType,omitempty"`
	AssignedDocsCount int                `json:"assignedDocumentsCount,omitempty"`
	Documents         []AssignedDocument `json:"documents,omitempty"`
	Indicators        []Indicator        `json:"indicators"`
	SchemaVersion     int                `json:"schemaVersion,omitempty"`
}
