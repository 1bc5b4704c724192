package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Commune is the lowest-level administrative unit being assessed.
type Commune struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Code         string    `db:"code" json:"code"`
	District     string    `db:"district" json:"district"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated account. Commune accounts carry the
// commune they report for; admin accounts have no commune.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	CommuneID    *uuid.UUID `db:"commune_id" json:"commune_id,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// AssessmentPeriod is one self-assessment cycle. The criteria catalog is
// defined per period; only one period is active at a time.
type AssessmentPeriod struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Year      int          `db:"year" json:"year"`
	Status    PeriodStatus `db:"status" json:"status"`
	StartDate time.Time    `db:"start_date" json:"start_date"`
	EndDate   time.Time    `db:"end_date" json:"end_date"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// EvidenceFile is one uploaded evidence file reference, optionally carrying
// the asynchronous signature verdict for signature-gated slots.
type EvidenceFile struct {
	Name            string          `json:"name"`
	URL             string          `json:"url"`
	StorageKey      string          `json:"storageKey,omitempty"`
	SignatureStatus SignatureStatus `json:"signatureStatus,omitempty"`
	SignatureError  string          `json:"signatureError,omitempty"`
	SignedAt        *time.Time      `json:"signedAt,omitempty"`
	UploadedAt      *time.Time      `json:"uploadedAt,omitempty"`
}

// ContentResult is a commune's recorded result for one content of a
// composite indicator.
type ContentResult struct {
	Value  any             `json:"value,omitempty"`
	Files  []EvidenceFile  `json:"files,omitempty"`
	Status IndicatorStatus `json:"status,omitempty"`
	Note   string          `json:"note,omitempty"`
}

// ValueMeta carries aggregate counts computed during evaluation. MetCount
// and TotalCount are recorded for composite indicators but the status is a
// strict conjunction; partial credit is not wired in.
type ValueMeta struct {
	MetCount   int       `json:"metCount,omitempty"`
	TotalCount int       `json:"totalCount,omitempty"`
	ComputedAt time.Time `json:"computedAt,omitempty"`
}

// IndicatorValue is the mutable per-indicator assessment record. Value is
// schemaless by design: a scalar, a string, a {total,completed|provided}
// object, or a checkbox map, depending on the indicator's InputType. For a
// composite indicator Value, Files and Status are derived from
// ContentResults and never entered directly.
type IndicatorValue struct {
	IsTasked                *bool                    `json:"isTasked,omitempty"`
	Value                   any                      `json:"value,omitempty"`
	Files                   []EvidenceFile           `json:"files,omitempty"`
	FilesPerDocument        map[int][]EvidenceFile   `json:"filesPerDocument,omitempty"`
	Note                    string                   `json:"note,omitempty"`
	Status                  IndicatorStatus          `json:"status,omitempty"`
	CommuneDefinedDocuments []AssignedDocument       `json:"communeDefinedDocuments,omitempty"`
	ContentResults          map[string]ContentResult `json:"contentResults,omitempty"`
	Meta                    *ValueMeta               `json:"meta,omitempty"`
}

// AssessmentData maps indicator IDs to their recorded values. It is stored
// as a single JSONB document per assessment; per-indicator merge writes keep
// concurrent sessions last-write-wins at indicator granularity.
type AssessmentData map[string]*IndicatorValue

// Value implements driver.Valuer for JSONB storage.
func (d AssessmentData) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshaling assessment data: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner for JSONB storage.
func (d *AssessmentData) Scan(src any) error {
	if src == nil {
		*d = AssessmentData{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported assessment data source type %T", src)
	}
	if len(b) == 0 {
		*d = AssessmentData{}
		return nil
	}
	return json.Unmarshal(b, d)
}

// Assessment is one commune's record for one assessment period.
type Assessment struct {
	ID                      uuid.UUID          `db:"id" json:"id"`
	CommuneID               uuid.UUID          `db:"commune_id" json:"commune_id"`
	PeriodID                uuid.UUID          `db:"period_id" json:"assessment_period_id"`
	Status                  AssessmentStatus   `db:"status" json:"assessment_status"`
	RegistrationStatus      RegistrationStatus `db:"registration_status" json:"registration_status"`
	Data                    AssessmentData     `db:"assessment_data" json:"assessment_data"`
	Progress                float64            `db:"progress" json:"progress"`
	RejectionReason         string             `db:"rejection_reason" json:"rejection_reason,omitempty"`
	SubmissionDate          *time.Time         `db:"submission_date" json:"submission_date,omitempty"`
	ApprovalDate            *time.Time         `db:"approval_date" json:"approval_date,omitempty"`
	AnnouncementDecisionURL string             `db:"announcement_decision_url" json:"announcement_decision_url,omitempty"`
	CreatedAt               time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time          `db:"updated_at" json:"updated_at"`
}

// Editable reports whether the commune may still mutate the assessment data.
// Once submitted for review, mutation ownership passes to the admin side
// until the record is returned for revision.
func (a *Assessment) Editable() bool {
	switch a.Status {
	case AssessmentNotStarted, AssessmentDraft, AssessmentRegistrationApproved,
		AssessmentRegistrationRejected, AssessmentReturnedForRevision:
		return true
	}
	return false
}

// SignatureJob is one queued signature-verification task for an uploaded
// evidence PDF.
type SignatureJob struct {
	ID            uuid.UUID          `db:"id" json:"id"`
	AssessmentID  uuid.UUID          `db:"assessment_id" json:"assessment_id"`
	IndicatorID   string             `db:"indicator_id" json:"indicator_id"`
	ContentID     string             `db:"content_id" json:"content_id,omitempty"`
	DocIndex      int                `db:"doc_index" json:"doc_index"`
	StorageKey    string             `db:"storage_key" json:"storage_key"`
	ReferenceDate string             `db:"reference_date" json:"reference_date"`
	DeadlineDays  int                `db:"deadline_days" json:"deadline_days"`
	Status        SignatureJobStatus `db:"status" json:"status"`
	Attempts      int                `db:"attempts" json:"attempts"`
	LastError     string             `db:"last_error" json:"last_error,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updated_at"`
}

// SignatureVerdict is the raw result of the external signature-verification
// collaborator, before deadline compliance is applied.
type SignatureVerdict struct {
	Valid    bool       `json:"valid"`
	SignedAt *time.Time `json:"signed_at,omitempty"`
	Error    string     `json:"error,omitempty"`
}
