package tools

// Config is the shared configuration embedded by tools
type Config struct {
	// name the registry key of the tool
	name string
	// description tells the model when to use the tool
	description string
}

func (c *Config) SetName(v string) {
	c.name = v
}

func (c Config) Name() string {
	return c.name
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}
