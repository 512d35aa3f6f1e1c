// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/gym-portal/config"
	_ "github.com/ariebrainware/gym-portal/docs"
	"github.com/ariebrainware/gym-portal/endpoint"
	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/monitoring"
	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// configureJWTSecret installs the token signing key. Only the test
// environment may run without one.
func configureJWTSecret(cfg *config.Config, secret string) error {
	if secret == "" && !cfg.IsTest() {
		return errors.New("JWTSECRET must be set")
	}
	util.SetJWTSecret(secret)
	return nil
}

// @title						Gym Portal API
// @version					1.0
// @description				Member check-in, loyalty, booking, membership and revenue API of the gym portal.
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the JWT.
func main() {
	// Load the configuration
	cfg := config.LoadConfig()
	util.InitLogger(cfg.LogLevel, cfg.GinMode != gin.ReleaseMode)

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err := model.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	if _, err := config.ConnectRedis(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, sessions fall back to the database")
	}

	if cfg.GeoIPPath != "" {
		if err := util.InitGeoIP(cfg.GeoIPPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.GeoIPPath).Msg("geoip database not loaded")
		}
	}
	defer util.CloseGeoIP()

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.RulesFile).Msg("invalid gym rules")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing domain events to kafka")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("closing event publisher")
		}
	}()

	metrics := monitoring.Init()
	if err := metrics.RegisterCache("geoip", util.GetGeoIPCacheMetrics); err != nil {
		log.Warn().Err(err).Msg("geoip cache metrics not registered")
	}
	util.SetSecurityLoggerDB(db)
	if err := configureJWTSecret(cfg, os.Getenv("JWTSECRET")); err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}

	endpoint.SetServiceDeps(service.Deps{
		Rules:     rules,
		Location:  cfg.Location(),
		Publisher: publisher,
		Metrics:   metrics,
		PlanCache: service.NewPlanCache(),
	})

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := endpoint.SetupRouter(db)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("app", cfg.AppName).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
