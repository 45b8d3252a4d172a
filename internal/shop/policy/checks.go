package policy

// Check is a single precondition of an operation.
type Check func() error

// Run evaluates checks in order and returns the first failure.
func Run(checks ...Check) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
