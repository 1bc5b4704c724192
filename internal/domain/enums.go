package domain

// FileType represents the allowed evidence file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole distinguishes provincial administrators from commune accounts.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCommune UserRole = "commune"
)

// InputType declares how an indicator or content is entered and evaluated.
// Behavior varies only by InputType plus the config carried on the record
// itself, never by individual indicator IDs.
type InputType string

const (
	InputBoolean         InputType = "boolean"
	InputNumber          InputType = "number"
	InputPercentageRatio InputType = "percentage_ratio"
	InputCheckboxGroup   InputType = "checkbox_group"
	InputTasked          InputType = "tc1_like"
	InputText            InputType = "text"
	InputSelect          InputType = "select"
)

// IndicatorStatus is the evaluated state of an indicator, content, or criterion.
type IndicatorStatus string

const (
	StatusPending     IndicatorStatus = "pending"
	StatusAchieved    IndicatorStatus = "achieved"
	StatusNotAchieved IndicatorStatus = "not-achieved"
)

// SignatureStatus is the digital-signature verdict carried on an evidence file.
type SignatureStatus string

const (
	SignatureValidating SignatureStatus = "validating"
	SignatureValid      SignatureStatus = "valid"
	SignatureInvalid    SignatureStatus = "invalid"
	SignatureError      SignatureStatus = "error"
)

// AssignmentType declares how required documents are assigned to a commune.
type AssignmentType string

const (
	// AssignmentSpecific means the admin names the exact documents required.
	AssignmentSpecific AssignmentType = "specific"
	// AssignmentQuantity means the admin fixes only a count (possibly zero,
	// in which case the commune declares the count itself).
	AssignmentQuantity AssignmentType = "quantity"
)

// AssessmentStatus is the lifecycle state of a commune's assessment record.
type AssessmentStatus string

const (
	AssessmentNotStarted           AssessmentStatus = "not_started"
	AssessmentDraft                AssessmentStatus = "draft"
	AssessmentPendingRegistration  AssessmentStatus = "pending_registration"
	AssessmentRegistrationApproved AssessmentStatus = "registration_approved"
	AssessmentRegistrationRejected AssessmentStatus = "registration_rejected"
	AssessmentPendingReview        AssessmentStatus = "pending_review"
	AssessmentReturnedForRevision  AssessmentStatus = "returned_for_revision"
	AssessmentAchievedStandard     AssessmentStatus = "achieved_standard"
	AssessmentRejected             AssessmentStatus = "rejected"
)

// RegistrationStatus mirrors the registration leg of the lifecycle.
type RegistrationStatus string

const (
	RegistrationNone     RegistrationStatus = "none"
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// PeriodStatus is the state of an assessment period.
type PeriodStatus string

const (
	PeriodDraft  PeriodStatus = "draft"
	PeriodActive PeriodStatus = "active"
	PeriodClosed PeriodStatus = "closed"
)

// SignatureJobStatus is the state of a queued signature-verification job.
type SignatureJobStatus string

const (
	SignatureJobQueued     SignatureJobStatus = "queued"
	SignatureJobProcessing SignatureJobStatus = "processing"
	SignatureJobDone       SignatureJobStatus = "done"
	SignatureJobFailed     SignatureJobStatus = "failed"
)
