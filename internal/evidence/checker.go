package evidence

import (
	"time"

	"latrack/internal/domain"
)

// Compliance is the deadline-checked outcome for one evidence file.
type Compliance struct {
	SignatureStatus   domain.SignatureStatus
	SignatureError    string
	SignedAt          *time.Time
	EffectiveDeadline time.Time
}

// Check combines an external signature-verification verdict with the
// issuance deadline: valid only when the signature verifies AND the signing
// date falls on or before referenceDate + deadlineDays working days. A
// failed verification maps to the error status; nothing here ever panics or
// returns an error to the caller, so each file renders its own state
// independently.
func Check(verdict domain.SignatureVerdict, referenceDate time.Time, deadlineDays int) Compliance {
	deadline := AddBusinessDays(referenceDate, deadlineDays)

	if verdict.Error != "" {
		return Compliance{
			SignatureStatus:   domain.SignatureError,
			SignatureError:    verdict.Error,
			EffectiveDeadline: deadline,
		}
	}
	if !verdict.Valid {
		return Compliance{
			SignatureStatus:   domain.SignatureInvalid,
			SignatureError:    "digital signature is not valid",
			EffectiveDeadline: deadline,
		}
	}
	if verdict.SignedAt == nil {
		return Compliance{
			SignatureStatus:   domain.SignatureError,
			SignatureError:    "signature carries no signing date",
			EffectiveDeadline: deadline,
		}
	}
	if verdict.SignedAt.After(endOfDay(deadline)) {
		return Compliance{
			SignatureStatus:   domain.SignatureInvalid,
			SignatureError:    "signed after the issuance deadline",
			SignedAt:          verdict.SignedAt,
			EffectiveDeadline: deadline,
		}
	}
	return Compliance{
		SignatureStatus:   domain.SignatureValid,
		SignedAt:          verdict.SignedAt,
		EffectiveDeadline: deadline,
	}
}

// CheckFromDocument resolves the reference date from an assigned document
// and applies Check. An unparseable or missing issue date resolves to the
// error status rather than failing.
func CheckFromDocument(verdict domain.SignatureVerdict, doc domain.AssignedDocument, defaultDeadlineDays int) Compliance {
	referenceDate, err := ParseDate(doc.IssueDate)
	if err != nil {
		return Compliance{
			SignatureStatus: domain.SignatureError,
			SignatureError:  "assigned document has no usable issue date",
		}
	}
	days := doc.IssuanceDeadlineDays
	if days <= 0 {
		days = defaultDeadlineDays
	}
	return Check(verdict, referenceDate, days)
}

// A signature stamped any time on the deadline day itself is on time.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
