package cli

// UsageError reports malformed flags, arguments or configuration values.
// The process exits with status 2 for it.
type UsageError struct {
	Err error
}

func (usageError *UsageError) Error() string {
	return usageError.Err.Error()
}

func (usageError *UsageError) Unwrap() error {
	return usageError.Err
}

func newUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}
