package jobs

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// === decodeStatusDocument ===

func TestDecodeStatusDocument_Valid(t *testing.T) {
	doc, err := decodeStatusDocument([]byte(`{
		"jobReference": {"jobId": "job_8f2e", "projectId": "analytics-prod"},
		"status": {"state": "RUNNING"},
		"statistics": {"creationTime": 1420070400000, "startTime": 1420070401000}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "job_8f2e", doc.JobReference.JobID)
	assert.Equal(t, "analytics-prod", doc.JobReference.ProjectID)
	require.NotNil(t, doc.Status)
	assert.Equal(t, "RUNNING", doc.Status.State)
	require.NotNil(t, doc.Statistics)
	require.NotNil(t, doc.Statistics.CreationTime)
	assert.Equal(t, int64(1420070400000), *doc.Statistics.CreationTime)
	assert.Nil(t, doc.Statistics.EndTime)
}

func TestDecodeStatusDocument_IdentityOnly(t *testing.T) {
	doc, err := decodeStatusDocument([]byte(`{"jobReference": {"jobId": "j1", "projectId": "p1"}}`))
	require.NoError(t, err)
	assert.Nil(t, doc.Status)
	assert.Nil(t, doc.Statistics)
}

func TestDecodeStatusDocument_MissingJobReference(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no job reference", raw: `{"status": {"state": "DONE"}}`},
		{name: "empty job id", raw: `{"jobReference": {"jobId": "", "projectId": "p1"}}`},
		{name: "empty project id", raw: `{"jobReference": {"jobId": "j1", "projectId": ""}}`},
		{name: "empty document", raw: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeStatusDocument([]byte(tt.raw))
			var malformed *MalformedDocumentError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestDecodeStatusDocument_InvalidJSON(t *testing.T) {
	_, err := decodeStatusDocument([]byte(`{"jobReference": `))
	var malformed *MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
}

// === normalizeState ===

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		raw  string
		want State
	}{
		{raw: "PENDING", want: StatePending},
		{raw: "pending", want: StatePending},
		{raw: "RUNNING", want: StateRunning},
		{raw: "running", want: StateRunning},
		{raw: "RuNniNg", want: StateRunning},
		{raw: "DONE", want: StateDone},
		{raw: "done", want: StateDone},
		{raw: "", want: StateUnknown},
		// Unrecognized server states pass through as opaque values.
		{raw: "PAUSED", want: State("PAUSED")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeState(tt.raw))
		})
	}
}

// === projectStatus ===

func TestProjectStatus_NoSections(t *testing.T) {
	doc, err := decodeStatusDocument([]byte(`{"jobReference": {"jobId": "j1", "projectId": "p1"}}`))
	require.NoError(t, err)
	assert.Nil(t, projectStatus(doc))
}

func TestProjectStatus_StatisticsWithoutStatus(t *testing.T) {
	doc, err := decodeStatusDocument([]byte(`{
		"jobReference": {"jobId": "j1", "projectId": "p1"},
		"statistics": {"creationTime": 1420070400000}
	}`))
	require.NoError(t, err)
	status := projectStatus(doc)
	require.NotNil(t, status)
	assert.Equal(t, StateUnknown, status.State)
	require.NotNil(t, status.CreatedAt)
	assert.Equal(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), *status.CreatedAt)
	assert.Nil(t, status.StartedAt)
	assert.Nil(t, status.EndedAt)
}

func TestMillisTime_PreservesFractionalSeconds(t *testing.T) {
	ms := int64(1420070400123)
	got := millisTime(&ms)
	require.NotNil(t, got)
	assert.Equal(t, int64(1420070400123), got.UnixMilli())
	assert.Equal(t, 123000000, got.Nanosecond())
}

// === apiErrorFromResponse ===

func TestAPIErrorFromResponse_StructuredEnvelope(t *testing.T) {
	resp := &Response{StatusCode: http.StatusForbidden, Body: []byte(`{"code":403,"message":"forbidden"}`)}
	apiErr := apiErrorFromResponse(resp)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "forbidden", apiErr.Message)
	assert.Equal(t, "API error (HTTP 403): forbidden", apiErr.Error())
}

func TestAPIErrorFromResponse_RawBodyFallback(t *testing.T) {
	resp := &Response{StatusCode: http.StatusInternalServerError, Body: []byte("Internal Server Error")}
	apiErr := apiErrorFromResponse(resp)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestAPIErrorFromResponse_EmptyBody(t *testing.T) {
	resp := &Response{StatusCode: http.StatusBadGateway, Body: nil}
	apiErr := apiErrorFromResponse(resp)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestAPIErrorFromResponse_EmptyMessageFallsBackToRawBody(t *testing.T) {
	body := `{"code":400,"message":""}`
	resp := &Response{StatusCode: http.StatusBadRequest, Body: []byte(body)}
	apiErr := apiErrorFromResponse(resp)
	assert.Equal(t, body, apiErr.Message)
}

// === Response ===

func TestResponseSuccess(t *testing.T) {
	assert.True(t, (&Response{StatusCode: 200}).Success())
	assert.True(t, (&Response{StatusCode: 204}).Success())
	assert.False(t, (&Response{StatusCode: 301}).Success())
	assert.False(t, (&Response{StatusCode: 404}).Success())
	assert.False(t, (&Response{StatusCode: 500}).Success())
}
