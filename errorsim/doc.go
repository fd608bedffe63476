// Package errorsim provides Batch, which can be used to compile multiple
// errors into a single one.
//
// The settle barrier uses it to collect per-sensor update failures during a
// settle pass without letting any single failure stop the remaining ones:
//
//	var batch errorsim.Batch
//	for name, sensor := range scene.Sensors() {
//	    // nil errors will be auto skipped
//	    batch.AddPrefix(name, sensor.Update(0))
//	}
//	// If all updates succeeded, Compile() returns nil.
//	// If only one failed, Compile() returns that error directly
//	// instead of wrapping it inside Batch.
//	return batch.Compile()
//
// This package is not thread-safe.
// The same batch should not be operated on different goroutines concurrently.
package errorsim
