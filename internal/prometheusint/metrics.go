package prometheusint

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GlobalRegistry should be used to register all metrics from metasim.go,
// to ensure they do not conflict with metrics registered directly by the
// host runtime embedding this library.
var GlobalRegistry = prometheus.WrapRegistererWith(prometheus.Labels{
	"metasim_go": "v0",
}, prometheus.DefaultRegisterer)
