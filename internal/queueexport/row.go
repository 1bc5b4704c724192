package queueexport

import (
	"time"

	"latrack/internal/domain"
)

// columns defines the fixed header; criterion columns follow in the order
// the caller supplies.
var columns = []string{
	"Commune",
	"Code",
	"District",
	"Status",
	"Registration",
	"Progress (%)",
	"Achieved Criteria",
	"Total Criteria",
	"Submitted At",
	"Decided At",
}

// Row is one exported review-queue line, flattened for spreadsheet output.
type Row struct {
	CommuneName       string
	CommuneCode       string
	District          string
	Status            domain.AssessmentStatus
	Registration      domain.RegistrationStatus
	Progress          float64
	AchievedCriteria  int
	TotalCriteria     int
	SubmissionDate    *time.Time
	ApprovalDate      *time.Time
	CriterionStatuses map[string]domain.IndicatorStatus
}

func header(criterionIDs []string) []string {
	h := make([]string, 0, len(columns)+len(criterionIDs))
	h = append(h, columns...)
	h = append(h, criterionIDs...)
	return h
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}
