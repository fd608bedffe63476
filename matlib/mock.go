package matlib

// Mock is a mocked Interface for use in tests.
//
// It records the number of WaitForPendingWork calls and returns Err.
type Mock struct {
	Calls int
	Err   error
}

var _ Interface = (*Mock)(nil)

// WaitForPendingWork implements Interface.
func (m *Mock) WaitForPendingWork() error {
	m.Calls++
	return m.Err
}
