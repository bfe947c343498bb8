package uistream

// Backend names a Provider implementation.
type Backend string

const (
	BackendProxy  Backend = "proxy"
	BackendGemini Backend = "gemini"
)

// Config holds user settings shared by the command line entry points.
type Config struct {
	Backend  Backend
	BaseURL  string
	Provider string
	Model    string
	Lenient  bool
	LogLevel string
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendProxy,
		BaseURL:  "http://localhost:3000",
		LogLevel: "info",
	}
}
