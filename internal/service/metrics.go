package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Open outcomes recorded in fileview_open_total.
const (
	OutcomeOpened     = "opened"
	OutcomeShared     = "shared"
	OutcomeOpenedURL  = "opened_url"
	OutcomeNotFound   = "not_found"
	OutcomeNoApp      = "no_app"
	OutcomeNoSharing  = "sharing_unavailable"
	OutcomeStageError = "materialization_failed"
	OutcomeFailed     = "failed"
)

// Metrics holds the prometheus collectors of the service layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	openTotal   *prometheus.CounterVec
	recentFiles prometheus.Gauge
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		openTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileview_open_total",
				Help: "Total number of open attempts by outcome.",
			},
			[]string{"outcome"},
		),
		recentFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fileview_recent_files",
			Help: "Number of entries in the persisted recent files list.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fileview_materialize_cache_hits_total",
			Help: "Materializations served from the resolver cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fileview_materialize_cache_misses_total",
			Help: "Materializations that had to copy the file.",
		}),
	}

	for _, c := range []prometheus.Collector{m.openTotal, m.recentFiles, m.cacheHits, m.cacheMisses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeOpen(outcome string) {
	if m == nil {
		return
	}
	m.openTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) setRecent(n int) {
	if m == nil {
		return
	}
	m.recentFiles.Set(float64(n))
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) cacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
