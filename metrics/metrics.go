package metrics

import (
	"context"
	"fmt"
	"os"
	"sync"

	statsdlib "github.com/CMGS/statsd"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/maps"

	"github.com/projecteru2/tetris/log"
	"github.com/projecteru2/tetris/types"
	"github.com/projecteru2/tetris/utils"
)

const (
	planServersKey  = "tetris.%s.plan.servers"
	planServersName = "tetris_plan_servers"
	planSpareKey    = "tetris.%s.plan.spare_capacity"
	planSpareName   = "tetris_plan_spare_capacity"
	trialsKey       = "tetris.%s.pack.trials"
	trialsName      = "tetris_pack_trials"
)

// Metrics define metrics
type Metrics struct {
	Config types.Config

	StatsdAddr   string
	Hostname     string
	statsdClient *statsdlib.Client

	Collectors map[string]prometheus.Collector
}

// SendPlanResult records the outcome of one ordering search. A zero-value
// Metrics (InitMetrics never called, e.g. library usage) is a no-op.
func (m *Metrics) SendPlanResult(ctx context.Context, servers int, spare float64, trials int) {
	if m.Collectors == nil {
		return
	}
	logger := log.WithFunc("metrics.SendPlanResult")
	logger.Debugf(ctx, "%d servers, %f spare, %d trials", servers, spare, trials)

	m.Collectors[planServersName].(*prometheus.GaugeVec).WithLabelValues(m.Hostname).Set(float64(servers))  //nolint
	m.Collectors[planSpareName].(*prometheus.GaugeVec).WithLabelValues(m.Hostname).Set(spare)               //nolint
	m.Collectors[trialsName].(*prometheus.CounterVec).WithLabelValues(m.Hostname).Add(float64(trials))      //nolint

	if err := m.gauge(ctx, planServersKey, float64(servers)); err != nil {
		logger.Error(ctx, err, "send servers gauge to statsd failed")
	}
	if err := m.gauge(ctx, planSpareKey, spare); err != nil {
		logger.Error(ctx, err, "send spare gauge to statsd failed")
	}
	if err := m.count(ctx, trialsKey, trials, 1.0); err != nil {
		logger.Error(ctx, err, "send trials count to statsd failed")
	}
}

// Lazy connect
func (m *Metrics) checkConn(ctx context.Context) error {
	if m.statsdClient != nil {
		return nil
	}
	logger := log.WithFunc("metrics.checkConn")
	var err error
	// We needn't try to renew/reconnect because of only supporting UDP protocol now
	if m.statsdClient, err = statsdlib.New(m.StatsdAddr, statsdlib.WithErrorHandler(func(err error) {
		logger.Error(ctx, err, "Sending statsd failed")
	})); err != nil {
		logger.Error(ctx, err, "Connect statsd failed")
		return err
	}
	return nil
}

func (m *Metrics) gauge(ctx context.Context, key string, value float64) error {
	if m.StatsdAddr == "" {
		return nil
	}
	if err := m.checkConn(ctx); err != nil {
		return err
	}
	m.statsdClient.Gauge(fmt.Sprintf(key, m.Hostname), value)
	return nil
}

func (m *Metrics) count(ctx context.Context, key string, n int, rate float32) error {
	if m.StatsdAddr == "" {
		return nil
	}
	if err := m.checkConn(ctx); err != nil {
		return err
	}
	m.statsdClient.Count(fmt.Sprintf(key, m.Hostname), n, rate)
	return nil
}

// Client is a metrics obj
var Client = Metrics{}
var once sync.Once

// InitMetrics new a metrics obj
func InitMetrics(config types.Config) error {
	hostname, err := os.Hostname()
	if err != nil {
		return err
	}
	Client = Metrics{
		Config:     config,
		StatsdAddr: config.Statsd,
		Hostname:   utils.CleanStatsdMetrics(hostname),
		Collectors: map[string]prometheus.Collector{},
	}

	Client.Collectors[planServersName] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: planServersName,
		Help: "servers used by the best plan found",
	}, []string{"hostname"})
	Client.Collectors[planSpareName] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: planSpareName,
		Help: "total spare capacity of the best plan found",
	}, []string{"hostname"})
	Client.Collectors[trialsName] = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: trialsName,
		Help: "packing trials evaluated",
	}, []string{"hostname"})

	once.Do(func() {
		prometheus.MustRegister(maps.Values(Client.Collectors)...)
	})
	return nil
}
