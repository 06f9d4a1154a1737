package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskwise/todoist-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Todoist API root.
	DefaultBaseURL = "https://api.todoist.com/api/v1"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is a Todoist API client authenticated with a bearer token.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	limiter *RateLimiter
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client for the given bearer token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		token:   token,
		limiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Projects returns all projects.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	return collectAll[Project](ctx, c, "/projects", nil)
}

// Sections returns sections, optionally filtered by project.
func (c *Client) Sections(ctx context.Context, projectID string) ([]Section, error) {
	q := url.Values{}
	if projectID != "" {
		q.Set("project_id", projectID)
	}
	return collectAll[Section](ctx, c, "/sections", q)
}

// TaskFilters narrows a task listing. All fields optional.
type TaskFilters struct {
	ProjectID string
	SectionID string
	Label     string
}

// Tasks returns active tasks matching the filters.
func (c *Client) Tasks(ctx context.Context, f TaskFilters) ([]Task, error) {
	q := url.Values{}
	if f.ProjectID != "" {
		q.Set("project_id", f.ProjectID)
	}
	if f.SectionID != "" {
		q.Set("section_id", f.SectionID)
	}
	if f.Label != "" {
		q.Set("label", f.Label)
	}
	return collectAll[Task](ctx, c, "/tasks", q)
}

// FilterTasks returns tasks matching a Todoist filter query
// (e.g. "today", "overdue", "#Work").
func (c *Client) FilterTasks(ctx context.Context, query string) ([]Task, error) {
	q := url.Values{}
	q.Set("query", query)
	return collectAll[Task](ctx, c, "/tasks/filter", q)
}

// Task returns a single task by ID.
func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var t Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CloseTask completes a task.
func (c *Client) CloseTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+id+"/close", nil, nil, nil)
}

// AddTaskArgs are the fields for creating a task.
type AddTaskArgs struct {
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	SectionID   string   `json:"section_id,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	DueString   string   `json:"due_string,omitempty"`
}

// AddTask creates a task and returns it.
func (c *Client) AddTask(ctx context.Context, args AddTaskArgs) (*Task, error) {
	var t Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, args, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTaskArgs are the updatable task fields. Description is a
// pointer so an empty string can clear it.
type UpdateTaskArgs struct {
	Content     string   `json:"content,omitempty"`
	Description *string  `json:"description,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	DueString   string   `json:"due_string,omitempty"`
}

// Empty reports whether no field is set.
func (a UpdateTaskArgs) Empty() bool {
	return a.Content == "" && a.Description == nil && a.Labels == nil &&
		a.Priority == 0 && a.DueString == ""
}

// UpdateTask updates a task's fields in place.
func (c *Client) UpdateTask(ctx context.Context, id string, args UpdateTaskArgs) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+id, nil, args, nil)
}

// MoveTaskArgs relocate a task. Exactly one destination is used by the
// API; project and section may be combined.
type MoveTaskArgs struct {
	ProjectID string `json:"project_id,omitempty"`
	SectionID string `json:"section_id,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
}

// Empty reports whether no destination is set.
func (a MoveTaskArgs) Empty() bool {
	return a.ProjectID == "" && a.SectionID == "" && a.ParentID == ""
}

// MoveTask moves a task to another project, section, or parent.
func (c *Client) MoveTask(ctx context.Context, id string, args MoveTaskArgs) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+id+"/move", nil, args, nil)
}

// AddSection creates a section within a project.
func (c *Client) AddSection(ctx context.Context, name, projectID string) (*Section, error) {
	body := map[string]string{"name": name, "project_id": projectID}
	var s Section
	if err := c.do(ctx, http.MethodPost, "/sections", nil, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Comments returns comments for a task or a project (one of the IDs
// must be set).
func (c *Client) Comments(ctx context.Context, taskID, projectID string) ([]Comment, error) {
	q := url.Values{}
	if taskID != "" {
		q.Set("task_id", taskID)
	}
	if projectID != "" {
		q.Set("project_id", projectID)
	}
	return collectAll[Comment](ctx, c, "/comments", q)
}

// Collaborators returns the users sharing a project.
func (c *Client) Collaborators(ctx context.Context, projectID string) ([]Collaborator, error) {
	return collectAll[Collaborator](ctx, c, "/projects/"+projectID+"/collaborators", nil)
}

// do executes one API request: rate-limit wait, bearer auth, an
// X-Request-Id on mutating calls, then error classification.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-Id", uuid.New().String())
	}

	logger.Debug("%s %s", method, u)
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err, u)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err, u)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == 429 {
			c.limiter.RecordRateLimitError(retryAfterSeconds(resp))
		}
		return classifyStatus(&APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(data)),
			URL:        u,
		})
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func retryAfterSeconds(resp *http.Response) int {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return secs
}
