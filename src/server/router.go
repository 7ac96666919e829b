package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CORSConfig allows any origin to call the game API
func CORSConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	cfg.OptionsResponseStatusCode = http.StatusOK
	return cfg
}

const (
	corsAllowHeaders = "Content-Type,Authorization"
	corsAllowMethods = "GET,POST,OPTIONS"
)

// corsHeaders stamps the CORS headers on every response, whether or not the
// request carried an Origin header
func corsHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Allow-Methods", corsAllowMethods)
		c.Next()
	}
}

// NewRouter wires the game handlers. gatherer backs /metrics.
func NewRouter(s *Server, gatherer prometheus.Gatherer, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(requestLogger(s.logger))
	engine.Use(recoverer(s.logger))
	engine.Use(corsHeaders())
	engine.Use(cors.New(CORSConfig()))

	engine.GET("/target", s.HandleTarget)
	engine.POST("/submit", s.HandleSubmit)
	engine.OPTIONS("/submit", s.HandlePreflight)
	engine.GET("/healthz", s.HandleHealth)

	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return engine
}
