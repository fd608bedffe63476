package randsim_test

import (
	"testing"

	"github.com/metasim/metasim.go/randsim"
)

func TestShouldSampleWithRate(t *testing.T) {
	const n = 1000
	for i := 0; i < n; i++ {
		if randsim.ShouldSampleWithRate(0) {
			t.Fatal("ShouldSampleWithRate(0) returned true")
		}
		if !randsim.ShouldSampleWithRate(1) {
			t.Fatal("ShouldSampleWithRate(1) returned false")
		}
	}
}
