package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// RegisterAll registers every collector this service exposes.
func RegisterAll(logger *logrus.Logger) {
	registerIfNotExists(collectors.NewGoCollector(), "go_collector", logger)
	registerIfNotExists(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), "process_collector", logger)

	registerIfNotExists(httpRequestsTotal, "http_requests_total", logger)
	registerIfNotExists(httpRequestDuration, "http_request_duration", logger)
	registerIfNotExists(httpErrorsTotal, "http_errors_total", logger)

	registerIfNotExists(syncPassesTotal, "sync_passes_total", logger)
	registerIfNotExists(barrierSkipsTotal, "barrier_skips_total", logger)
	registerIfNotExists(guardRejectionsTotal, "guard_rejections_total", logger)
	registerIfNotExists(priceFetchesTotal, "price_fetches_total", logger)
	registerIfNotExists(sessionsActive, "sessions_active", logger)
}

// registerIfNotExists tolerates re-registration on restart; anything else
// (descriptor mismatch) is a real problem worth logging loudly.
func registerIfNotExists(collector prometheus.Collector, name string, logger *logrus.Logger) {
	if err := prometheus.Register(collector); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegErr) {
			logger.Debugf("%s already registered", name)
		} else {
			logger.Errorf("failed to register %s: %v", name, err)
		}
	}
}
