package todoist

import (
	"encoding/json"
	"time"
)

// rawView captures the full API object alongside the few fields the CLI
// inspects. Marshalling returns the original JSON untouched so output
// stays faithful to whatever the API added since this client was built.

// Project is a Todoist project.
type Project struct {
	ID   string
	Name string

	raw json.RawMessage
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var v struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.ID = v.ID
	p.Name = v.Name
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	return p.raw, nil
}

// Section is a section within a project.
type Section struct {
	ID        string
	Name      string
	ProjectID string

	raw json.RawMessage
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var v struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.ID = v.ID
	s.Name = v.Name
	s.ProjectID = v.ProjectID
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (s Section) MarshalJSON() ([]byte, error) {
	return s.raw, nil
}

// Task is a Todoist task.
type Task struct {
	ID           string
	ProjectID    string
	SectionID    string
	Content      string
	AssigneeID   string
	CommentCount int
	CreatedAt    string

	raw json.RawMessage
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var v struct {
		ID           string `json:"id"`
		ProjectID    string `json:"project_id"`
		SectionID    string `json:"section_id"`
		Content      string `json:"content"`
		AssigneeID   string `json:"assignee_id"`
		CommentCount int    `json:"comment_count"`
		CreatedAt    string `json:"created_at"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	t.ID = v.ID
	t.ProjectID = v.ProjectID
	t.SectionID = v.SectionID
	t.Content = v.Content
	t.AssigneeID = v.AssigneeID
	t.CommentCount = v.CommentCount
	t.CreatedAt = v.CreatedAt
	t.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	return t.raw, nil
}

// RawMap decodes the task's original JSON into a map so callers can
// attach derived fields (inlined comments, section name) before output.
func (t Task) RawMap() (map[string]any, error) {
	m := make(map[string]any)
	if err := json.Unmarshal(t.raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreatedTime parses the task's creation timestamp. Todoist returns
// RFC 3339; older objects may lack the timezone suffix.
func (t Task) CreatedTime() (time.Time, bool) {
	if t.CreatedAt == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", t.CreatedAt); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// Comment is a comment on a task or project.
type Comment struct {
	ID string

	raw json.RawMessage
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.ID = v.ID
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (c Comment) MarshalJSON() ([]byte, error) {
	return c.raw, nil
}

// Collaborator is a user sharing a project.
type Collaborator struct {
	ID    string
	Name  string
	Email string

	raw json.RawMessage
}

func (c *Collaborator) UnmarshalJSON(data []byte) error {
	var v struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.ID = v.ID
	c.Name = v.Name
	c.Email = v.Email
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (c Collaborator) MarshalJSON() ([]byte, error) {
	return c.raw, nil
}
