package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns the service registry and every collector the handlers and
// services update. Methods are safe on a nil receiver so tests can skip metrics.
type Collector struct {
	Registry *prometheus.Registry

	APIRequests     *prometheus.CounterVec
	APIDuration     prometheus.Histogram
	ActiveOrders    prometheus.Gauge
	ProductsCount   prometheus.Gauge
	DatabaseOps     *prometheus.CounterVec
	OrderValue      prometheus.Histogram
	CartItems       prometheus.Counter
	CheckoutSuccess prometheus.Counter
	CheckoutFailure *prometheus.CounterVec

	SystemCPU    prometheus.Gauge
	SystemMemory prometheus.Gauge
	SystemDisk   prometheus.Gauge
	AppInfo      *prometheus.GaugeVec
}

// AppInfo labels the app_info gauge.
type AppInfo struct {
	Name        string
	Version     string
	Environment string
}

func New(info AppInfo) *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total API requests",
		}, []string{"method", "endpoint", "status"}),
		APIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration",
			Buckets: prometheus.DefBuckets,
		}),
		ActiveOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_orders_total",
			Help: "Total active orders",
		}),
		ProductsCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "products_count_total",
			Help: "Total products count",
		}),
		DatabaseOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "database_operations_total",
			Help: "Total database operations",
		}, []string{"operation", "table"}),
		OrderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_value_dollars",
			Help:    "Order value distribution",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 12),
		}),
		CartItems: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cart_items_total",
			Help: "Total items added to cart",
		}),
		CheckoutSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_success_total",
			Help: "Successful checkouts",
		}),
		CheckoutFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Failed checkouts",
		}, []string{"reason"}),
		SystemCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "System CPU usage percentage",
		}),
		SystemMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_memory_usage_percent",
			Help: "System memory usage percentage",
		}),
		SystemDisk: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_disk_usage_percent",
			Help: "System disk usage percentage",
		}),
		AppInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application information",
		}, []string{"version", "name", "environment"}),
	}

	c.Registry.MustRegister(
		c.APIRequests, c.APIDuration, c.ActiveOrders, c.ProductsCount,
		c.DatabaseOps, c.OrderValue, c.CartItems,
		c.CheckoutSuccess, c.CheckoutFailure,
		c.SystemCPU, c.SystemMemory, c.SystemDisk, c.AppInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.AppInfo.WithLabelValues(info.Version, info.Name, info.Environment).Set(1)
	return c
}

// ObserveRequest records one finished API call.
func (c *Collector) ObserveRequest(method, endpoint, status string, seconds float64) {
	if c == nil {
		return
	}
	c.APIRequests.WithLabelValues(method, endpoint, status).Inc()
	c.APIDuration.Observe(seconds)
}

func (c *Collector) DBOp(operation, table string) {
	if c == nil {
		return
	}
	c.DatabaseOps.WithLabelValues(operation, table).Inc()
}

func (c *Collector) SetProducts(n int) {
	if c == nil {
		return
	}
	c.ProductsCount.Set(float64(n))
}

func (c *Collector) SetOrders(n int) {
	if c == nil {
		return
	}
	c.ActiveOrders.Set(float64(n))
}

func (c *Collector) CartItemAdded() {
	if c == nil {
		return
	}
	c.CartItems.Inc()
}

func (c *Collector) CheckoutSucceeded(total float64) {
	if c == nil {
		return
	}
	c.CheckoutSuccess.Inc()
	c.OrderValue.Observe(total)
}

func (c *Collector) CheckoutFailed(reason string) {
	if c == nil {
		return
	}
	c.CheckoutFailure.WithLabelValues(reason).Inc()
}

// SetSystem stores the latest host usage sample.
func (c *Collector) SetSystem(cpu, mem, disk float64) {
	if c == nil {
		return
	}
	c.SystemCPU.Set(cpu)
	c.SystemMemory.Set(mem)
	c.SystemDisk.Set(disk)
}
