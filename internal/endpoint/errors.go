package endpoint

import "fmt"

// ConfigError reports that the banking service endpoint could not be
// determined. It is never cached: the next Resolve tries again.
type ConfigError struct {
	Source string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("endpoint config (%s): %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("endpoint config (%s): %s", e.Source, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
