package jobs

import (
	"context"
	"encoding/json"
	"net/http"
)

// Transport performs authenticated network calls against the query service on
// behalf of a snapshot. Implementations own HTTP, authentication, and request
// serialization; the snapshot only checks the response status and decodes the
// body. A snapshot never opens, closes, or pools its transport.
type Transport interface {
	// GetJob fetches the current status document for a job.
	GetJob(ctx context.Context, jobID string) (*Response, error)

	// GetJobResultsPage fetches one page of a job's result set.
	GetJobResultsPage(ctx context.Context, jobID string, opts *PageOptions) (*Response, error)

	// CancelJob requests cancellation of a queued or running job.
	CancelJob(ctx context.Context, jobID string) (*Response, error)
}

// Response is the decoded outcome of one transport call.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Success reports whether the response carries a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}
