package asyncengine

// Mock is a mocked Interface for use in tests.
//
// It records the number of WaitForTasks calls and returns Err.
type Mock struct {
	Calls int
	Err   error
}

var _ Interface = (*Mock)(nil)

// WaitForTasks implements Interface.
func (m *Mock) WaitForTasks() error {
	m.Calls++
	return m.Err
}
