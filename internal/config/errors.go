package config

// ConfigurationError reports an unsupported or missing configuration value.
type ConfigurationError struct {
	Key string // offending key, empty when the error is about a file
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}
