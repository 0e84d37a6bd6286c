package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	asksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playd",
			Subsystem: "engine",
			Name:      "asks_total",
			Help:      "Total retrieval-augmented questions answered",
		},
		[]string{"model", "outcome"},
	)

	chatsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playd",
			Subsystem: "engine",
			Name:      "chat_turns_total",
			Help:      "Total chat turns served",
		},
		[]string{"model", "outcome"},
	)

	pullsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playd",
			Subsystem: "engine",
			Name:      "pulls_total",
			Help:      "Total model pulls requested",
		},
		[]string{"outcome"},
	)

	tokensStreamed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "playd",
			Subsystem: "engine",
			Name:      "tokens_streamed_total",
			Help:      "Total token fragments streamed to clients",
		},
	)
)

func init() {
	prometheus.MustRegister(asksTotal, chatsTotal, pullsTotal, tokensStreamed)
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
