package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/squareup/colstore/conf"
	"github.com/squareup/colstore/errors"
	"github.com/squareup/colstore/metrics"
)

// Factory creates counters in its own registry and serves them over HTTP between Start and Stop.
// Counters with the same name are shared, so several tables can report under one metric.
type Factory struct {
	config     conf.Config
	lock       sync.Mutex
	registry   *prometheus.Registry
	counters   map[string]*Counter
	httpServer *http.Server
	started    bool
}

func NewFactory(config conf.Config) *Factory {
	return &Factory{
		config:   config,
		registry: prometheus.NewRegistry(),
		counters: make(map[string]*Counter),
	}
}

func (f *Factory) CreateCounter(name string, description string) (metrics.Counter, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if counter, ok := f.counters[name]; ok {
		return counter, nil
	}
	pCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: description,
	})
	if err := f.registry.Register(pCounter); err != nil {
		return nil, errors.WithStack(err)
	}
	counter := &Counter{pCounter: pCounter}
	f.counters[name] = counter
	return counter, nil
}

// Gatherer exposes the registry, for tests and for callers that serve metrics themselves.
func (f *Factory) Gatherer() prometheus.Gatherer {
	return f.registry
}

func (f *Factory) Start() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.started {
		return errors.New("already started")
	}
	metricsListenAddr := conf.DefaultMetricsHTTPListenAddr
	if f.config.MetricsHTTPListenAddr != "" {
		metricsListenAddr = f.config.MetricsHTTPListenAddr
	}
	f.httpServer = &http.Server{Addr: metricsListenAddr, Handler: promhttp.HandlerFor(f.registry, promhttp.HandlerOpts{})}
	f.started = true
	go func(srv *http.Server) {
		log.Debugf("starting prometheus http server on address %s", metricsListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("prometheus http export server failed to listen %v", err)
		}
	}(f.httpServer)
	return nil
}

func (f *Factory) Stop() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if !f.started {
		return errors.New("not started")
	}
	f.started = false
	if f.httpServer != nil {
		return f.httpServer.Close()
	}
	return nil
}

type Counter struct {
	pCounter prometheus.Counter
}

func (c *Counter) Inc() {
	c.pCounter.Inc()
}
