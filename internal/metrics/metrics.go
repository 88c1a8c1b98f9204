// Package metrics 统计验证结果，并以 node_exporter textfile 格式导出
package metrics

import (
	"github.com/kashguard/go-txverify/internal/verify"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "txverify"

	// ResultPassed 验证通过
	ResultPassed = "passed"
)

// Recorder 记录每个用例的验证结果
type Recorder struct {
	registry *prometheus.Registry
	cases    *prometheus.CounterVec
	lastRun  prometheus.Gauge
}

// NewRecorder 创建使用独立 registry 的 Recorder
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_total",
			Help:      "Verified cases by coin and result.",
		}, []string{"coin", "result"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed verification run.",
		}),
	}
	r.registry.MustRegister(r.cases, r.lastRun)
	return r
}

// Registry 返回内部 registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe 记录一个用例；err 为 nil 记为 passed，否则按错误类别记录
func (r *Recorder) Observe(coin string, err error) {
	r.cases.WithLabelValues(coin, Result(err)).Inc()
}

// Finish 标记一次运行结束
func (r *Recorder) Finish() {
	r.lastRun.SetToCurrentTime()
}

// WriteTextfile 把当前指标写入 textfile collector 使用的文件
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}

// Result 把验证错误映射为 result 标签
func Result(err error) string {
	if err == nil {
		return ResultPassed
	}
	return verify.KindOf(err).String()
}
