package jobs

// DefaultTimeoutMillis is applied when PageOptions.TimeoutMillis is left zero.
const DefaultTimeoutMillis = 10000

// PageOptions configures one paged-results call. The zero value requests the
// first page with server defaults.
type PageOptions struct {
	// PageToken is the opaque continuation cursor from a previous page;
	// empty requests the first page.
	PageToken string

	// MaxResults caps the rows returned per page; the server may return
	// fewer. Zero leaves the page size to the server.
	MaxResults int64

	// StartIndex is the zero-based row offset for the first page. The server
	// ignores it once pages are addressed by token.
	StartIndex uint64

	// TimeoutMillis bounds how long the server waits for query completion
	// before returning a possibly-incomplete page. Enforcement is entirely
	// server-side.
	TimeoutMillis int64
}

// ResultPage is one decoded slice of a job's result set.
type ResultPage struct {
	Columns   []string        `json:"columns"`
	Rows      [][]interface{} `json:"rows"`
	RowCount  int             `json:"row_count"`
	TotalRows int64           `json:"total_rows"`

	// Complete is false when the server returned early after TimeoutMillis
	// with the query still executing.
	Complete bool `json:"complete"`

	// NextPageToken addresses the next slice; empty on the last page.
	NextPageToken string `json:"next_page_token"`
}
