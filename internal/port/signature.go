package port

import (
	"context"

	"latrack/internal/domain"
)

// SignatureVerifier is the external digital-signature verification
// collaborator. The cryptography is out of scope here: implementations
// return a verdict with the extracted signing date, and verification
// failures come back inside the verdict, not as an error.
type SignatureVerifier interface {
	Verify(ctx context.Context, pdf []byte) (*domain.SignatureVerdict, error)
}
