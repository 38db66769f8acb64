package hooks

// Config is the contents of .dmflow.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig groups hooks by the workflow event that fires them.
type HooksConfig struct {
	OnLive []*HookConfig `yaml:"on_live"` // Run in order after go live
}

// HookConfig is one shell command.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // Seconds; DefaultTimeout when unset
}

// DefaultTimeout is the hook timeout in seconds when none is configured.
const DefaultTimeout = 30

// OnLive returns the on_live hooks. Safe on a nil config.
func (c *Config) OnLive() []*HookConfig {
	if c == nil {
		return nil
	}
	return c.Hooks.OnLive
}
