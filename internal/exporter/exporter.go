package exporter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SyntropyNet/syntropy-ping/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	pkgName = "PrometheusExporter. "
	cmd     = "EXPORTER"
)

type ProbeMetrics struct {
	port uint16
	reg  *prometheus.Registry
}

func New(port uint16, collector prometheus.Collector) (*ProbeMetrics, error) {
	obj := ProbeMetrics{
		port: port,
		reg:  prometheus.NewRegistry(),
	}

	err := obj.reg.Register(collector)
	if err != nil {
		return nil, err
	}

	return &obj, nil
}

// Handler returns http handler serving registered metrics
func (obj *ProbeMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(obj.reg, promhttp.HandlerOpts{})
}

// Run starts metrics http server in background. Server is closed when ctx is done.
func (obj *ProbeMetrics) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", obj.Handler())

	logger.Debug().Println(pkgName, "exporter starting on port", obj.port)
	srv := http.Server{
		Addr:         fmt.Sprintf(":%d", obj.port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != http.ErrServerClosed {
			logger.Error().Println(pkgName, err)
		}
	}()

	go func() {
		<-ctx.Done()
		logger.Debug().Println(pkgName, "stopping", cmd)
		srv.Close()
	}()

	return nil
}

func (obj *ProbeMetrics) Name() string {
	return cmd
}
