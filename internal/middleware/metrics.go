package middleware

import (
	"strconv"
	"time"

	"studentreg/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latency by route template.
func Metrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		method := c.Method()
		collector.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusOf(c, err))).Inc()
		collector.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
