package jobs

import "context"

// RowIterator walks a job's result set page by page, following the server's
// continuation tokens exactly as a caller looping over FetchResultsPage by
// hand would. It issues one network call per page and nothing more: no
// prefetch, no retry, no waiting for job completion.
type RowIterator struct {
	snapshot *Snapshot
	opts     PageOptions
	page     *ResultPage
	row      int
	done     bool
}

// Rows returns an iterator over the job's results, starting from the page
// addressed by opts.
func (s *Snapshot) Rows(opts *PageOptions) *RowIterator {
	it := &RowIterator{snapshot: s}
	if opts != nil {
		it.opts = *opts
	}
	return it
}

// Next returns the next result row, fetching further pages as needed. It
// returns ok == false once the fetched result set is exhausted.
func (it *RowIterator) Next(ctx context.Context) (row []interface{}, ok bool, err error) {
	for {
		if it.page != nil && it.row < len(it.page.Rows) {
			row := it.page.Rows[it.row]
			it.row++
			return row, true, nil
		}
		if it.done {
			return nil, false, nil
		}
		page, err := it.snapshot.FetchResultsPage(ctx, &it.opts)
		if err != nil {
			return nil, false, err
		}
		it.page = page
		it.row = 0
		it.opts.PageToken = page.NextPageToken
		it.opts.StartIndex = 0
		if page.NextPageToken == "" {
			it.done = true
		}
	}
}

// Columns returns the column names of the most recently fetched page, or nil
// before the first fetch.
func (it *RowIterator) Columns() []string {
	if it.page == nil {
		return nil
	}
	return it.page.Columns
}

// PageComplete reports whether the most recently fetched page came from a
// completed job. False means the server answered early after TimeoutMillis;
// whether and when to re-fetch stays the caller's policy.
func (it *RowIterator) PageComplete() bool {
	return it.page == nil || it.page.Complete
}
