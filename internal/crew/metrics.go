//nolint:gochecknoglobals
package crew

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gangbro/missionboard/internal/apperr"
)

var crewOpsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "missionboard",
	Name:      "crew_operations_total",
	Help:      "Join and leave attempts by result code",
}, []string{"op", "result"})

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = string(apperr.CodeOf(err))
	}

	crewOpsMetric.WithLabelValues(op, result).Inc()
}
