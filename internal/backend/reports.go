package backend

import (
	"context"
	"net/http"
	"net/url"
)

// DownloadReport streams the per-office visit report for a date range. The
// response body is the raw file; the caller owns closing it.
func (c *Client) DownloadReport(ctx context.Context, officeID, start, end string) (*http.Response, error) {
	query := url.Values{}
	query.Set("start", start)
	query.Set("end", end)
	return c.do(ctx, http.MethodGet, "/report/office/"+url.PathEscape(officeID)+"?"+query.Encode(), "", nil)
}
