package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ai-meal-ranker/internal/reco"
)

// Recorder holds the Prometheus instruments for ranking and planning traffic.
type Recorder struct {
	requests     *prometheus.CounterVec
	candidates   *prometheus.CounterVec
	dietExcluded prometheus.Counter
	scores       prometheus.Histogram
	planFill     prometheus.Histogram
	planTotal    prometheus.Histogram
	tasteSource  *prometheus.CounterVec
}

// NewRecorder registers the instruments on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mealranker_requests_total",
			Help: "Rank and plan requests by operation.",
		}, []string{"operation"}),
		candidates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mealranker_candidates_total",
			Help: "Candidates received by operation.",
		}, []string{"operation"}),
		dietExcluded: f.NewCounter(prometheus.CounterOpts{
			Name: "mealranker_diet_excluded_total",
			Help: "Candidates dropped by the diet filter.",
		}),
		scores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mealranker_rank_score",
			Help:    "score01 of returned rank items.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		planFill: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mealranker_plan_fill_ratio",
			Help:    "Share of plan days that received a meal.",
			Buckets: prometheus.LinearBuckets(0, 0.125, 9),
		}),
		planTotal: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "mealranker_plan_total_cents",
			Help:    "Estimated plan cost in cents.",
			Buckets: prometheus.ExponentialBuckets(500, 2, 8),
		}),
		tasteSource: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mealranker_taste_embedding_total",
			Help: "Where the taste embedding of a request came from.",
		}, []string{"source"}),
	}
}

// ObserveRank records one rank request.
func (r *Recorder) ObserveRank(candidates int, res reco.Result) {
	r.requests.WithLabelValues("rank").Inc()
	r.candidates.WithLabelValues("rank").Add(float64(candidates))
	r.dietExcluded.Add(float64(res.Excluded))
	for _, item := range res.Items {
		r.scores.Observe(item.Score01)
	}
}

// ObservePlan records one plan request.
func (r *Recorder) ObservePlan(candidates int, out reco.PlanOut) {
	r.requests.WithLabelValues("plan").Inc()
	r.candidates.WithLabelValues("plan").Add(float64(candidates))
	r.dietExcluded.Add(float64(out.Excluded))

	filled := 0
	for _, d := range out.Days {
		if d.Dinner != nil {
			filled++
		}
	}
	if len(out.Days) > 0 {
		r.planFill.Observe(float64(filled) / float64(len(out.Days)))
	}
	r.planTotal.Observe(float64(out.EstimatedTotalCents))
}

// Taste sources.
const (
	TasteSupplied = "supplied"
	TasteEmbedded = "embedded"
	TasteFailed   = "failed"
	TasteNone     = "none"
)

// ObserveTaste records where a request's taste embedding came from.
func (r *Recorder) ObserveTaste(source string) {
	r.tasteSource.WithLabelValues(source).Inc()
}
