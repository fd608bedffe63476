package asyncengine

// Interface defines the interface an async engine implementation must
// implement.
type Interface interface {
	// WaitForTasks blocks until all currently queued tasks have completed.
	WaitForTasks() error
}
