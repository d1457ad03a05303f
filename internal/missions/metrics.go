//nolint:gochecknoglobals
package missions

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gangbro/missionboard/internal/apperr"
)

var (
	transitionsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "missionboard",
		Name:      "mission_transitions_total",
		Help:      "Status transition attempts by target status and result code",
	}, []string{"to", "result"})

	purgeFailuresMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "missionboard",
		Name:      "chat_purge_failures_total",
		Help:      "Chat purges that failed after the mission change was committed",
	})
)

func observe(to string, err error) {
	result := "ok"
	if err != nil {
		result = string(apperr.CodeOf(err))
	}

	transitionsMetric.WithLabelValues(to, result).Inc()
}
