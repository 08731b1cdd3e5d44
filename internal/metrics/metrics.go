package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	likesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starmatch_likes_total",
			Help: "Total number of like actions processed",
		},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starmatch_matches_total",
			Help: "Total number of mutual matches created",
		},
	)

	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starmatch_reports_total",
			Help: "Total number of report submissions",
		},
		[]string{"status"},
	)

	bansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starmatch_bans_total",
			Help: "Total number of bans issued",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "starmatch_compatibility_percentage",
			Help:    "Distribution of headline compatibility percentages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func IncLike()  { likesTotal.Inc() }
func IncMatch() { matchesTotal.Inc() }
func IncBan()   { bansTotal.Inc() }

func IncReport(accepted bool) {
	status := "accepted"
	if !accepted {
		status = "duplicate"
	}
	reportsTotal.WithLabelValues(status).Inc()
}

func ObserveCompatibility(percentage float64) {
	compatibilityScores.Observe(percentage)
}
