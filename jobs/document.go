package jobs

import "encoding/json"

// Wire shapes of the service's job status document. The document is decoded
// once at ingestion into typed optional-field structs; accessors never index
// into raw JSON.

type statusDocument struct {
	JobReference *jobReference      `json:"jobReference"`
	Status       *statusSection     `json:"status"`
	Statistics   *statisticsSection `json:"statistics"`
}

type jobReference struct {
	JobID     string `json:"jobId"`
	ProjectID string `json:"projectId"`
}

type statusSection struct {
	State       string    `json:"state"`
	ErrorResult *JobError `json:"errorResult"`
}

type statisticsSection struct {
	CreationTime *int64 `json:"creationTime"`
	StartTime    *int64 `json:"startTime"`
	EndTime      *int64 `json:"endTime"`
}

// JobError carries the terminal failure reported in a job's status section.
type JobError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// decodeStatusDocument parses a server status document. The job reference is
// the only required substructure; status and statistics may each be absent.
func decodeStatusDocument(raw []byte) (*statusDocument, error) {
	var doc statusDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ErrMalformedDocument("decode status document: %v", err)
	}
	if doc.JobReference == nil || doc.JobReference.JobID == "" || doc.JobReference.ProjectID == "" {
		return nil, ErrMalformedDocument("status document is missing its job reference")
	}
	return &doc, nil
}
