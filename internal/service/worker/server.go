package worker

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apasynq"
	"github.com/rmorlok/connlifecycle/internal/api_common"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/apredis"
	"github.com/rmorlok/connlifecycle/internal/config"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/service"
)

const serviceId = "worker"

// healthState tracks the async server and scheduler for the health endpoint.
type healthState struct {
	mu          sync.RWMutex
	running     bool
	hasError    bool
	isScheduler bool
}

func (h *healthState) serverHealth(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hasError = h.hasError || err != nil
}

func (h *healthState) schedulerHealth(isScheduler bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hasError = h.hasError || err != nil
	h.isScheduler = isScheduler
}

func (h *healthState) setRunning(running bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = running
}

func (h *healthState) snapshot() (running, hasError, isScheduler bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running, h.hasError, h.isScheduler
}

// healthDependencies is the subset of the dependency manager the health endpoint checks.
type healthDependencies interface {
	GetDatabase() database.DB
	GetRedisClient() apredis.Client
	GetAsyncClient() apasynq.Client
	GetLogger() *slog.Logger
}

func newRouter(debug bool, deps healthDependencies, state *healthState) *gin.Engine {
	router := api_common.GinForService(serviceId, debug)

	router.GET("/ping", func(c *gin.Context) {
		c.PureJSON(http.StatusOK, gin.H{
			"service": serviceId,
			"message": "pong",
		})
	})

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		dbChan := make(chan bool, 1)
		redisChan := make(chan bool, 1)
		asynqClientChan := make(chan bool, 1)

		go func() {
			dbChan <- deps.GetDatabase().Ping(ctx)
		}()

		go func() {
			redisChan <- apredis.Ping(ctx, deps.GetRedisClient(), deps.GetLogger())
		}()

		go func() {
			ac := deps.GetAsyncClient()
			asynqClientChan <- ac != nil && ac.Ping() == nil
		}()

		dbOk := <-dbChan
		redisOk := <-redisChan
		asyncClientOk := <-asynqClientChan
		running, hasError, isScheduler := state.snapshot()

		everythingOk := dbOk && redisOk && running && !hasError && asyncClientOk
		status := http.StatusOK
		if !everythingOk {
			status = http.StatusServiceUnavailable
		}

		c.PureJSON(status, gin.H{
			"service":          serviceId,
			"db":               dbOk,
			"redis":            redisOk,
			"asynqServer":      running && !hasError,
			"asynqClient":      asyncClientOk,
			"asyncIsScheduler": isScheduler,
			"ok":               everythingOk,
		})
	})

	return router
}

// Serve runs the lifecycle worker: the asynq server that processes lifecycle tasks, the scheduler that enqueues
// them on their cron schedules and a health check endpoint. It blocks until the process is signalled.
func Serve(cfg config.C) error {
	dm := service.NewDependencyManager(serviceId, cfg)
	defer dm.Close()

	aplog.SetDefaultLog(dm.GetRootLogger())
	logger := dm.GetLogger()

	if !dm.HasRedis() {
		return errors.New("the worker requires a redis block in the configuration")
	}

	workerConfig := cfg.GetRoot().Worker
	state := &healthState{}
	router := newRouter(cfg.IsDebugMode(), dm, state)

	dm.AutoMigrateDatabase()

	ctx := context.Background()

	srv := asynq.NewServerFromRedisClient(
		dm.GetRedisClient(),
		asynq.Config{
			HealthCheckFunc: state.serverHealth,
			Concurrency:     workerConfig.GetConcurrency(),
			BaseContext: func() context.Context {
				return ctx
			},
			Logger:   &asynqLogger{inner: dm.GetLogBuilder().WithComponent("asynq").Build()},
			LogLevel: asynq.InfoLevel,
			Queues: map[string]int{
				"default": 5,
			},
		},
	)

	mux := asynq.NewServeMux()
	dm.GetCoreService().RegisterTasks(mux)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		state.setRunning(true)
		if err := srv.Run(mux); err != nil {
			state.serverHealth(err)
			log.Fatalf("could not run async server: %v", err)
		}
		state.setRunning(false)
		logger.Info("Async worker shutdown complete")
	}()

	scheduler := newScheduler(
		dm.GetRedisClient(),
		state.schedulerHealth,
		dm.GetLogBuilder().WithComponent("scheduler").Build(),
	).
		addRegistrar(dm.GetCoreService())

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := scheduler.Run(); err != nil {
			state.schedulerHealth(false, err)
			log.Fatalf("could not run scheduler: %v", err)
		}
		logger.Info("Async scheduler shutdown complete")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		httpServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", workerConfig.GetHealthCheckPort()),
			Handler: router,
		}
		if err := api_common.RunServer(httpServer, logger); err != nil {
			logger.Error("health check server shutdown failed", "error", err)
		}
		logger.Info("Gin shutdown complete")
	}()

	wg.Wait()
	logger.Info("Worker shutdown complete")

	return nil
}
