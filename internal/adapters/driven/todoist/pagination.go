package todoist

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// pageLimit is the page size requested from the API.
const pageLimit = 200

// page is one cursor-paginated API response.
type page[T any] struct {
	Results    []T     `json:"results"`
	NextCursor *string `json:"next_cursor"`
}

// collectAll follows next_cursor pages until exhausted and returns the
// concatenated results.
func collectAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var all []T
	cursor := ""
	for {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("limit", strconv.Itoa(pageLimit))
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var p page[T]
		if err := c.do(ctx, http.MethodGet, path, q, nil, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Results...)

		if p.NextCursor == nil || *p.NextCursor == "" {
			return all, nil
		}
		cursor = *p.NextCursor
	}
}
