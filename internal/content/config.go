package content

// Config holds generation tuning for the content flows.
type Config struct {
	// MaxTokens is the response budget per request. Notes can run long, so
	// this default is generous.
	MaxTokens int

	// Temperature for generation. Study material benefits from a little
	// variety without drifting loose.
	Temperature float64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}
