// Package jobstest provides an in-memory Transport for testing code built on
// package jobs without a live query service.
package jobstest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"lakehouse-client/jobs"
)

var _ jobs.Transport = (*FakeTransport)(nil)

// FakeTransport serves seeded status documents and result pages from memory
// and records every call it receives.
type FakeTransport struct {
	mu        sync.Mutex
	documents map[string]json.RawMessage
	pages     map[string]map[string]*jobs.ResultPage
	failure   *jobs.Response
	calls     []Call
}

// Call records one transport invocation.
type Call struct {
	Method string
	JobID  string
	Opts   *jobs.PageOptions
}

// New creates an empty FakeTransport.
func New() *FakeTransport {
	return &FakeTransport{
		documents: make(map[string]json.RawMessage),
		pages:     make(map[string]map[string]*jobs.ResultPage),
	}
}

// SetDocument seeds the status document served for a job.
func (f *FakeTransport) SetDocument(jobID string, doc []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents[jobID] = append(json.RawMessage(nil), doc...)
}

// RemoveDocument makes subsequent get-job calls for the job answer 404.
func (f *FakeTransport) RemoveDocument(jobID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.documents, jobID)
}

// SetPage seeds the result page served for a job at the given continuation
// token; the empty token addresses the first page.
func (f *FakeTransport) SetPage(jobID, token string, page *jobs.ResultPage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pages[jobID] == nil {
		f.pages[jobID] = make(map[string]*jobs.ResultPage)
	}
	copyPage := *page
	f.pages[jobID][token] = &copyPage
}

// FailWith makes every subsequent call answer with the given failure response.
func (f *FakeTransport) FailWith(statusCode int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, _ := json.Marshal(map[string]interface{}{"code": statusCode, "message": message})
	f.failure = &jobs.Response{StatusCode: statusCode, Body: body}
}

// Recover clears a failure installed by FailWith.
func (f *FakeTransport) Recover() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failure = nil
}

// Calls returns a copy of every recorded invocation, in order.
func (f *FakeTransport) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// GetJob implements jobs.Transport.
func (f *FakeTransport) GetJob(_ context.Context, jobID string) (*jobs.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "GetJob", JobID: jobID})
	if f.failure != nil {
		return f.failure, nil
	}
	doc, ok := f.documents[jobID]
	if !ok {
		return notFound(jobID), nil
	}
	return &jobs.Response{StatusCode: http.StatusOK, Body: append(json.RawMessage(nil), doc...)}, nil
}

// GetJobResultsPage implements jobs.Transport.
func (f *FakeTransport) GetJobResultsPage(_ context.Context, jobID string, opts *jobs.PageOptions) (*jobs.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var optsCopy *jobs.PageOptions
	if opts != nil {
		c := *opts
		optsCopy = &c
	}
	f.calls = append(f.calls, Call{Method: "GetJobResultsPage", JobID: jobID, Opts: optsCopy})
	if f.failure != nil {
		return f.failure, nil
	}
	token := ""
	if opts != nil {
		token = opts.PageToken
	}
	page, ok := f.pages[jobID][token]
	if !ok {
		return notFound(jobID), nil
	}
	body, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}
	return &jobs.Response{StatusCode: http.StatusOK, Body: body}, nil
}

// CancelJob implements jobs.Transport.
func (f *FakeTransport) CancelJob(_ context.Context, jobID string) (*jobs.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: "CancelJob", JobID: jobID})
	if f.failure != nil {
		return f.failure, nil
	}
	if _, ok := f.documents[jobID]; !ok {
		return notFound(jobID), nil
	}
	return &jobs.Response{StatusCode: http.StatusOK, Body: json.RawMessage(`{}`)}, nil
}

func notFound(jobID string) *jobs.Response {
	body, _ := json.Marshal(map[string]interface{}{
		"code":    http.StatusNotFound,
		"message": fmt.Sprintf("job %q not found", jobID),
	})
	return &jobs.Response{StatusCode: http.StatusNotFound, Body: body}
}
