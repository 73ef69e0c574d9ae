package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financebi_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	importsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financebi_imports_total",
			Help: "Finished import jobs by final status",
		},
		[]string{"status"},
	)
)

// Metrics registra conteo y duración por ruta. Usa el patrón de la ruta, no la URL,
// para no disparar la cardinalidad con ids.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			path = utils.CopyString(r.Path)
		}
		// fasthttp reutiliza el buffer de la petición: las etiquetas guardadas deben ser copias.
		method := utils.CopyString(c.Method())

		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordLogin cuenta un intento de login ("success" | "failure").
func RecordLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// RecordImport cuenta un trabajo de importación terminado.
func RecordImport(status string) {
	importsTotal.WithLabelValues(status).Inc()
}
