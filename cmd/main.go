package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/config"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func newRouter(pool *poolContext) *gin.Engine {
	router := gin.Default()

	router.Use(gzip.Gzip(gzip.DefaultCompression))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsCfg))

	p := ginprometheus.NewPrometheus("gin")

	// roundabout setup of /metrics endpoint to avoid double-gzip of response
	router.Use(p.HandlerFunc())
	h := promhttp.InstrumentMetricHandler(prometheus.DefaultRegisterer, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{DisableCompression: true}))

	router.GET(p.MetricsPath, func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	})

	router.GET("/favicon.ico", pool.ignoreHandler)

	router.GET("/version", pool.versionHandler)
	router.GET("/identify", pool.identifyHandler)
	router.GET("/healthcheck", pool.healthCheckHandler)

	if api := router.Group("/api"); api != nil {
		api.GET("/search", pool.authenticateHandler, pool.searchHandler)
		api.GET("/search/facets", pool.authenticateHandler, pool.facetsHandler)
	}

	pprof.Register(router)

	router.Use(static.Serve("/assets", static.LocalFile("./assets", false)))

	return router
}

/**
 * Main entry point for the web service
 */
func main() {
	log.Printf("===> virgo4-solr-facet-ws starting up <===")

	var cfgFile string
	var i18nDir string
	flag.StringVar(&cfgFile, "config", "", "configuration file (default: read from the environment)")
	flag.StringVar(&i18nDir, "i18n", "i18n", "directory of translation files")
	flag.Parse()

	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		log.Printf("[CONFIG] %s", err.Error())
		log.Printf("exiting due to configuration error(s) above")
		os.Exit(1)
	}

	log.Printf("[CONFIG] composite json:")
	log.Printf("\n%s", cfg.Composite())

	pool := initializePool(cfg, i18nDir)

	gin.SetMode(gin.ReleaseMode)
	//gin.DisableConsoleColor()

	router := newRouter(pool)

	portStr := fmt.Sprintf(":%s", pool.config.Service.Port)
	log.Printf("Start service on %s", portStr)

	log.Fatal(router.Run(portStr))
}
