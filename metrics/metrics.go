// Package metrics exposes engine activity to Prometheus. The engine is single
// threaded, so the frame loop pushes into a Recorder and the HTTP side only
// reads the Recorder's collectors.
package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phanxgames/marquee"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marquee"

// Recorder counts engine events and mirrors live registration counts. It is an
// EventSink, and Observe should be called once per frame with Engine.Stats.
type Recorder struct {
	events    *prometheus.CounterVec
	frames    prometheus.Counter
	tweens    prometheus.Gauge
	listeners prometheus.Gauge
	timers    prometheus.Gauge
	mounted   prometheus.Gauge

	mu   sync.Mutex
	last marquee.Stats
}

// NewRecorder creates a recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Engine events by type.",
		}, []string{"type"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames observed.",
		}),
		tweens: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_tweens",
			Help:      "Scheduled tweens and timelines still running.",
		}),
		listeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scroll_listeners",
			Help:      "Registered scroll bindings.",
		}),
		timers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_timers",
			Help:      "Interval timers not yet stopped.",
		}),
		mounted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mounted",
			Help:      "1 while a lifecycle is mounted.",
		}),
	}
	reg.MustRegister(r.events, r.frames, r.tweens, r.listeners, r.timers, r.mounted)
	return r
}

// EmitEvent implements marquee.EventSink.
func (r *Recorder) EmitEvent(event marquee.Event) {
	r.events.WithLabelValues(event.Type.String()).Inc()
}

// Observe records one frame's registration counts.
func (r *Recorder) Observe(st marquee.Stats) {
	r.frames.Inc()
	r.tweens.Set(float64(st.Tweens))
	r.listeners.Set(float64(st.Listeners))
	r.timers.Set(float64(st.Timers))
	if st.Mounted {
		r.mounted.Set(1)
	} else {
		r.mounted.Set(0)
	}
	r.mu.Lock()
	r.last = st
	r.mu.Unlock()
}

// Stats returns the counts passed to the latest Observe.
func (r *Recorder) Stats() marquee.Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// NewRouter serves /metrics from g, /stats as JSON from rec, and /healthz.
func NewRouter(g prometheus.Gatherer, rec *Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rec.Stats())
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// shutdownTimeout bounds graceful shutdown once ctx is cancelled.
const shutdownTimeout = 5 * time.Second

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
