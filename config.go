package conveyor

// Config holds configuration for a Queue.
type Config struct {
	// Concurrency is the maximum number of tasks executed at once.
	Concurrency int

	// RateLimit is the maximum sustained task starts per second.
	// Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the burst size for the token-bucket rate limiter.
	// Defaults to 1 if RateLimit is set but RateBurst is zero.
	RateBurst int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency: 10,
	}
}
