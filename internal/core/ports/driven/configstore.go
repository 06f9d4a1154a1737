package driven

// ConfigStore provides persistent key-value configuration for ambient
// settings (default project, request timeout overrides). Getters return
// the fallback when the key is unset or holds another type.
type ConfigStore interface {
	GetString(key, fallback string) string
	GetInt(key string, fallback int) int
	Set(key string, value any) error

	// Path returns the configuration file path, for diagnostics.
	Path() string
}
