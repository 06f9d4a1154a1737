package domain

// Placeholder values shipped in source. Credentials equal to these mean
// the operator has not registered an OAuth app yet; the flow must fail
// before any network call.
const (
	PlaceholderClientID     = "PLACEHOLDER_CLIENT_ID"
	PlaceholderClientSecret = "PLACEHOLDER_CLIENT_SECRET"
)

// ClientCredentials identifies this application to Todoist. Loaded once
// per invocation and treated as constant for the process lifetime.
type ClientCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Configured reports whether real credentials have been supplied.
func (c ClientCredentials) Configured() bool {
	return c.ClientID != "" && c.ClientID != PlaceholderClientID
}
