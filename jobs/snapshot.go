// Package jobs mirrors asynchronous query jobs of the lakehouse query service.
//
// A Snapshot holds the most recently fetched status document for one job and
// delegates refresh, result paging, and cancellation to a caller-supplied
// Transport. The job lifecycle is entirely server-driven: the snapshot never
// infers transitions, polls, or retries. Read-only accessor use is safe to
// share; Refresh replaces internal state and needs external synchronization
// when snapshots are shared across goroutines.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// State is a job lifecycle state as reported by the server.
type State string

// Known job lifecycle states. The server may grow further states; those pass
// through State() as opaque values rather than failing decode.
const (
	StatePending State = "PENDING"
	StateRunning State = "RUNNING"
	StateDone    State = "DONE"

	// StateUnknown is synthesized locally while no status document has been
	// loaded yet.
	StateUnknown State = "UNKNOWN"
)

// normalizeState maps a server state string onto a known State by
// case-insensitive match, passing unrecognized values through unchanged.
func normalizeState(raw string) State {
	if raw == "" {
		return StateUnknown
	}
	for _, known := range []State{StatePending, StateRunning, StateDone} {
		if strings.EqualFold(raw, string(known)) {
			return known
		}
	}
	return State(raw)
}

// JobStatus is the typed projection of a document's status and statistics
// sections. Timestamp ordering (created <= started <= ended) is asserted by
// the server and trusted as-is.
type JobStatus struct {
	State       State
	ErrorResult *JobError
	CreatedAt   *time.Time
	StartedAt   *time.Time
	EndedAt     *time.Time
}

// Snapshot is the locally-held copy of one job's most recently fetched status
// document. Each refresh replaces the status projection wholesale; there is no
// incremental merge.
type Snapshot struct {
	transport Transport
	jobID     string
	projectID string
	status    *JobStatus
}

// FromDocument decodes a server status document into a Snapshot bound to the
// given transport. transport may be nil for a read-only snapshot; Refresh,
// FetchResultsPage, Cancel, and Exists then fail with a NoTransportError.
func FromDocument(raw []byte, transport Transport) (*Snapshot, error) {
	doc, err := decodeStatusDocument(raw)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		transport: transport,
		jobID:     doc.JobReference.JobID,
		projectID: doc.JobReference.ProjectID,
		status:    projectStatus(doc),
	}, nil
}

// projectStatus flattens a document's optional status and statistics sections
// into one projection, or nil when the document carries neither.
func projectStatus(doc *statusDocument) *JobStatus {
	if doc.Status == nil && doc.Statistics == nil {
		return nil
	}
	status := &JobStatus{State: StateUnknown}
	if doc.Status != nil {
		status.State = normalizeState(doc.Status.State)
		status.ErrorResult = doc.Status.ErrorResult
	}
	if doc.Statistics != nil {
		status.CreatedAt = millisTime(doc.Statistics.CreationTime)
		status.StartedAt = millisTime(doc.Statistics.StartTime)
		status.EndedAt = millisTime(doc.Statistics.EndTime)
	}
	return status
}

func millisTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func optionalTime(t *time.Time) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

// JobID returns the server-assigned job identifier.
func (s *Snapshot) JobID() string { return s.jobID }

// ProjectID returns the identifier of the project owning the job.
func (s *Snapshot) ProjectID() string { return s.projectID }

// State returns the server-reported lifecycle state, or StateUnknown while no
// status section has been loaded.
func (s *Snapshot) State() State {
	if s.status == nil {
		return StateUnknown
	}
	return s.status.State
}

// IsPending reports whether the job is waiting to be scheduled.
func (s *Snapshot) IsPending() bool { return s.State() == StatePending }

// IsRunning reports whether the job is currently executing.
func (s *Snapshot) IsRunning() bool { return s.State() == StateRunning }

// IsDone reports whether the job has reached its terminal state.
func (s *Snapshot) IsDone() bool { return s.State() == StateDone }

// CreatedAt returns the job creation time when the server has reported one.
func (s *Snapshot) CreatedAt() (time.Time, bool) {
	if s.status == nil {
		return time.Time{}, false
	}
	return optionalTime(s.status.CreatedAt)
}

// StartedAt returns the execution start time; absent until the job has left
// the pending state.
func (s *Snapshot) StartedAt() (time.Time, bool) {
	if s.status == nil {
		return time.Time{}, false
	}
	return optionalTime(s.status.StartedAt)
}

// EndedAt returns the completion time; absent until the job is done.
func (s *Snapshot) EndedAt() (time.Time, bool) {
	if s.status == nil {
		return time.Time{}, false
	}
	return optionalTime(s.status.EndedAt)
}

// ErrorResult returns the terminal failure reported by the server, if any.
func (s *Snapshot) ErrorResult() (*JobError, bool) {
	if s.status == nil || s.status.ErrorResult == nil {
		return nil, false
	}
	return s.status.ErrorResult, true
}

// Refresh fetches the job's current status document and replaces the status
// projection wholesale. On any failure the snapshot keeps its prior fields:
// nothing is written until the new document has decoded successfully.
func (s *Snapshot) Refresh(ctx context.Context) error {
	if s.transport == nil {
		return ErrNoTransport("refresh job %q: no transport bound", s.jobID)
	}
	resp, err := s.transport.GetJob(ctx, s.jobID)
	if err != nil {
		return err
	}
	if !resp.Success() {
		return apiErrorFromResponse(resp)
	}
	doc, err := decodeStatusDocument(resp.Body)
	if err != nil {
		return err
	}
	s.status = projectStatus(doc)
	return nil
}

// FetchResultsPage fetches exactly one page of the job's results. Following
// NextPageToken across calls is the caller's responsibility; Rows wraps that
// loop for convenience. The snapshot itself is not modified.
func (s *Snapshot) FetchResultsPage(ctx context.Context, opts *PageOptions) (*ResultPage, error) {
	if s.transport == nil {
		return nil, ErrNoTransport("fetch results for job %q: no transport bound", s.jobID)
	}
	var o PageOptions
	if opts != nil {
		o = *opts
	}
	if o.TimeoutMillis <= 0 {
		o.TimeoutMillis = DefaultTimeoutMillis
	}
	resp, err := s.transport.GetJobResultsPage(ctx, s.jobID, &o)
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, apiErrorFromResponse(resp)
	}
	var page ResultPage
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, fmt.Errorf("decode result page: %w", err)
	}
	return &page, nil
}

// Cancel asks the server to cancel the job. Cancellation is asynchronous on
// the server side; the final state arrives through a later Refresh.
func (s *Snapshot) Cancel(ctx context.Context) error {
	if s.transport == nil {
		return ErrNoTransport("cancel job %q: no transport bound", s.jobID)
	}
	resp, err := s.transport.CancelJob(ctx, s.jobID)
	if err != nil {
		return err
	}
	if !resp.Success() {
		return apiErrorFromResponse(resp)
	}
	return nil
}

// Exists probes whether the server still knows the job. A 404 maps to false
// rather than an error; the snapshot is not modified.
func (s *Snapshot) Exists(ctx context.Context) (bool, error) {
	if s.transport == nil {
		return false, ErrNoTransport("check job %q: no transport bound", s.jobID)
	}
	resp, err := s.transport.GetJob(ctx, s.jobID)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if !resp.Success() {
		return false, apiErrorFromResponse(resp)
	}
	return true, nil
}
