package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ORSError is a rejected OpenRouteService call. Code and Message come from
// the {"error":{"code":...,"message":...}} envelope when the body has one;
// otherwise Message holds the raw body.
type ORSError struct {
	HTTPStatus int
	Code       int
	Message    string
}

func (e *ORSError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("ors: http %d: error %d: %s", e.HTTPStatus, e.Code, e.Message)
	}
	return fmt.Sprintf("ors: http %d: %s", e.HTTPStatus, e.Message)
}

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 << 10

// decodeORSError reads the error envelope. The gateway in front of ORS
// answers auth and quota failures with {"error":"<text>"} instead.
func decodeORSError(status int, body []byte) *ORSError {
	e := &ORSError{HTTPStatus: status, Message: strings.TrimSpace(string(body))}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &envelope) != nil || len(envelope.Error) == 0 {
		return e
	}

	var detail struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(envelope.Error, &detail) == nil && detail.Message != "" {
		e.Code, e.Message = detail.Code, detail.Message
		return e
	}

	var text string
	if json.Unmarshal(envelope.Error, &text) == nil && text != "" {
		e.Message = text
	}
	return e
}

// postJSON sends in to endpoint once and decodes a 2xx reply into out.
// Replies with status >= 400 become *ORSError.
func (o *ORSDistanceProvider) postJSON(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return decodeORSError(resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
