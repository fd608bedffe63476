package prometheussim

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuckets is the default bucket values for a prometheus histogram
// metric.
//
// Settle barriers usually finish in well under a second,
// but a host with a long material-compile backlog can take much longer,
// hence the wide range.
var DefaultBuckets = prometheus.ExponentialBuckets(0.0001, 2.5, 14) // 100us ~ 14.9s
