package matlib

// Interface defines the interface a material library implementation must
// implement.
type Interface interface {
	// WaitForPendingWork blocks until all pending material compiles and
	// refreshes have finished.
	//
	// It's a single operation on purpose:
	// hosts expose differently-named wait entry points
	// (pending refreshes, pending compiles, pending tasks),
	// and the adaptation layer picks whichever one its host provides.
	WaitForPendingWork() error
}
