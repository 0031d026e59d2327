package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                         sync.Once
	metricsRouter                *chi.Mux
	tokenClientLatency           *prometheus.HistogramVec
	queueSendErrorCounter        prometheus.Counter
	httpRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram      *prometheus.HistogramVec
	ledgerOperationCounter       *prometheus.CounterVec
	totalStakedGauge             prometheus.Gauge
	activeStakesGauge            prometheus.Gauge
	vaultBalanceGauge            prometheus.Gauge
	rewardSurplusGauge           prometheus.Gauge
	dbLatency                    *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	tokenClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "token_client_latency_seconds",
			Help:    "Histogram of token client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming HTTP request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "path", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	ledgerOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operation_count",
			Help: "The total number of ledger operations split by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	totalStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "total_staked",
			Help: "Principal currently owed to stakers in base token units",
		},
	)

	activeStakesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_stakes_count",
			Help: "Number of live stakes",
		},
	)

	vaultBalanceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vault_balance",
			Help: "Token balance held in vault custody in base token units",
		},
	)

	rewardSurplusGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reward_surplus",
			Help: "Vault balance beyond staked principal, available for reward payouts",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		tokenClientLatency,
		queueSendErrorCounter,
		httpRequestDurationHistogram,
		pollerDurationHistogram,
		ledgerOperationCounter,
		totalStakedGauge,
		activeStakesGauge,
		vaultBalanceGauge,
		rewardSurplusGauge,
		dbLatency,
	)
}

func RecordTokenClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	tokenClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordLedgerOperation(operation string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	ledgerOperationCounter.WithLabelValues(operation, status.String()).Inc()
}

func RecordTotalStaked(amount float64) {
	totalStakedGauge.Set(amount)
}

func RecordActiveStakesCount(count int) {
	activeStakesGauge.Set(float64(count))
}

func RecordVaultBalance(balance float64) {
	vaultBalanceGauge.Set(balance)
}

func RecordRewardSurplus(surplus float64) {
	rewardSurplusGauge.Set(surplus)
}

// StartHttpRequestDurationTimer starts a timer to measure incoming HTTP request duration.
func StartHttpRequestDurationTimer(method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
