package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// Class categorizes why a translation attempt against a backend failed.
type Class int

const (
	ClassUnreachable Class = iota // connection could not be established
	ClassTimeout                  // no response within the attempt bound
	ClassBadStatus                // non-2xx HTTP status
	ClassMalformedBody            // 2xx but body missing the translated text
)

func (c Class) String() string {
	switch c {
	case ClassUnreachable:
		return "unreachable"
	case ClassTimeout:
		return "timeout"
	case ClassBadStatus:
		return "bad-status"
	case ClassMalformedBody:
		return "malformed-body"
	default:
		return "unknown"
	}
}

// Error is a classified failure from a single backend attempt.
type Error struct {
	URL   string
	Class Class
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.URL, e.Class, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Request describes one translation to perform. Source defaults to "auto"
// when empty, letting the backend detect the language.
type Request struct {
	Text   string
	Source string
	Target string
	APIKey string
}

// Translation is the normalized backend response. DetectedSource is set only
// when the backend reports which language it detected.
type Translation struct {
	Text           string
	DetectedSource string
}

// Backend is a translation client bound to a single candidate URL with a
// fixed per-attempt timeout.
type Backend struct {
	baseURL string
	client  *http.Client
}

// New creates a Backend for the given base URL. The timeout bounds the whole
// attempt, connect and read included.
func New(baseURL string, timeout time.Duration) *Backend {
	return &Backend{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// URL returns the backend base URL.
func (b *Backend) URL() string {
	return b.baseURL
}

// Translate performs one POST to the backend's /translate endpoint using the
// LibreTranslate payload (q, source, target, format). Errors are always
// *Error with the attempt classified; there is no retry here.
func (b *Backend) Translate(ctx context.Context, req Request) (Translation, error) {
	src := req.Source
	if src == "" {
		src = "auto"
	}

	payload := map[string]any{
		"q":      req.Text,
		"source": src,
		"target": req.Target,
		"format": "text",
	}
	if req.APIKey != "" {
		payload["api_key"] = req.APIKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Translation{}, &Error{URL: b.baseURL, Class: ClassMalformedBody, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return Translation{}, &Error{URL: b.baseURL, Class: ClassUnreachable, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return Translation{}, &Error{URL: b.baseURL, Class: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Translation{}, &Error{URL: b.baseURL, Class: classifyTransport(err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Translation{}, &Error{
			URL:   b.baseURL,
			Class: ClassBadStatus,
			Err:   fmt.Errorf("http %d: %s", resp.StatusCode, snippet(respBody)),
		}
	}

	translated := gjson.GetBytes(respBody, "translatedText")
	if !translated.Exists() {
		return Translation{}, &Error{
			URL:   b.baseURL,
			Class: ClassMalformedBody,
			Err:   fmt.Errorf("no translatedText field in response: %s", snippet(respBody)),
		}
	}

	return Translation{
		Text:           translated.String(),
		DetectedSource: detectedLanguage(respBody),
	}, nil
}

// detectedLanguage handles both response shapes LibreTranslate deployments
// produce: a bare string, or an object {"language": ..., "confidence": ...}.
func detectedLanguage(body []byte) string {
	if lang := gjson.GetBytes(body, "detectedLanguage.language"); lang.Exists() {
		return lang.String()
	}
	if lang := gjson.GetBytes(body, "detectedLanguage"); lang.Type == gjson.String {
		return lang.String()
	}
	return ""
}

func classifyTransport(err error) Class {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTimeout
	}
	return ClassUnreachable
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
