// File: pkg/storage/s3/recorder.go
package s3

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Cap on the response body kept for error text
const maxRecordedBody = 64 << 10

// bodyRecorder keeps a copy of the last failed response body. The SDK consumes
// error bodies while deserializing, and its error values do not carry them.
type bodyRecorder struct {
	next aws.HTTPClient

	mu   sync.Mutex
	last []byte
}

var _ aws.HTTPClient = (*bodyRecorder)(nil)

func newBodyRecorder(next aws.HTTPClient) *bodyRecorder {
	return &bodyRecorder{next: next}
}

func (r *bodyRecorder) Do(req *http.Request) (*http.Response, error) {
	resp, err := r.next.Do(req)
	if err != nil || resp == nil || resp.Body == nil || resp.StatusCode < 300 {
		return resp, err
	}

	head, readErr := io.ReadAll(io.LimitReader(resp.Body, maxRecordedBody))
	if readErr == nil {
		r.mu.Lock()
		r.last = head
		r.mu.Unlock()
	}

	// Hand the SDK an equivalent body so its own error parsing still works
	resp.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), resp.Body), resp.Body}
	return resp, nil
}

// Returns and clears the recorded body
func (r *bodyRecorder) take() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	body := string(r.last)
	r.last = nil
	return body
}
