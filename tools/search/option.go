package search

type Option func(*Config)

// WithMaxResults sets the result limit used when the input omits max_results
func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.maxResults = n
	}
}

// WithIndex replaces the result table
func WithIndex(index []Entry) Option {
	return func(c *Config) {
		c.index = index
	}
}
