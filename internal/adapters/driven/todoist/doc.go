// Package todoist is a bearer-authenticated client for the Todoist
// REST API. It follows cursor pagination, rate-limits outgoing
// requests, and classifies API failures into the domain error taxonomy.
// API objects are kept as raw JSON for output, with minimal typed views
// for name resolution and client-side filtering.
package todoist
