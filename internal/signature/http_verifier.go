package signature

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"latrack/internal/domain"
	"latrack/internal/port"
)

// httpVerifier calls an external signature-verification endpoint with the
// raw PDF bytes and decodes its verdict. The verdict also carries
// verification failures (no signature found, corrupt file); only transport
// problems surface as errors.
type httpVerifier struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPVerifier creates a SignatureVerifier backed by an HTTP endpoint.
func NewHTTPVerifier(endpoint string, timeout time.Duration) port.SignatureVerifier {
	return &httpVerifier{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (v *httpVerifier) Verify(ctx context.Context, pdf []byte) (*domain.SignatureVerdict, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(pdf))
	if err != nil {
		return nil, fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling signature verifier: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("signature verifier returned status %d", resp.StatusCode)
	}

	var verdict domain.SignatureVerdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("decoding verifier response: %w", err)
	}
	return &verdict, nil
}
