package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/lavarapido/wash-scheduler/internal/config"
	dbpkg "github.com/lavarapido/wash-scheduler/internal/db"
	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/logger"
	"github.com/lavarapido/wash-scheduler/internal/middleware"
	"github.com/lavarapido/wash-scheduler/internal/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)

	schedule := domain.Schedule{
		Open:        cfg.SlotOpen,
		Close:       cfg.SlotClose,
		SlotMinutes: cfg.SlotMinutes,
		LunchStart:  cfg.LunchStart,
		LunchEnd:    cfg.LunchEnd,
		Capacity:    cfg.SlotCapacity,
		Timezone:    cfg.Timezone,
	}
	if err := schedule.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid schedule config")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, schedule, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
