package worker

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/apredis"
)

const (
	schedulerMutexKeyName = "worker:scheduler_master"
	schedulerLockTime     = 2 * time.Minute
	schedulerSyncInterval = 10 * time.Second
)

// TaskRegistrar contributes periodic tasks to the scheduler.
type TaskRegistrar interface {
	GetCronTasks() []*asynq.PeriodicTaskConfig
}

// scheduler runs the asynq periodic task manager on exactly one replica. Replicas compete for a redis lock and the
// holder keeps extending it while it schedules.
type scheduler struct {
	r               apredis.Client
	healthCheckFunc func(isScheduler bool, err error)
	registrars      []TaskRegistrar
	mtx             sync.Mutex
	mgr             *asynq.PeriodicTaskManager
	wg              sync.WaitGroup
	done            chan struct{}
	closeOnce       sync.Once
	rsMtx           apredis.Mutex
	logger          *slog.Logger
}

func newScheduler(r apredis.Client, hc func(isScheduler bool, err error), l *slog.Logger) *scheduler {
	return &scheduler{
		r:               r,
		healthCheckFunc: hc,
		logger:          l,
		done:            make(chan struct{}),
		rsMtx: apredis.NewMutex(r, schedulerMutexKeyName,
			apredis.MutexOptionLockFor(schedulerLockTime),
			apredis.MutexOptionDetailedLockMetadata(),
		),
	}
}

func (s *scheduler) addRegistrar(tr TaskRegistrar) *scheduler {
	s.registrars = append(s.registrars, tr)
	return s
}

// GetConfigs implements asynq.PeriodicTaskConfigProvider.
func (s *scheduler) GetConfigs() ([]*asynq.PeriodicTaskConfig, error) {
	configs := make([]*asynq.PeriodicTaskConfig, 0)
	for _, tr := range s.registrars {
		configs = append(configs, tr.GetCronTasks()...)
	}
	return configs, nil
}

var _ asynq.PeriodicTaskConfigProvider = (*scheduler)(nil)

func (s *scheduler) isRunning() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.mgr != nil
}

func (s *scheduler) start(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.mgr != nil {
		return nil
	}

	s.logger.Info("Obtained lock for scheduler")
	s.healthCheckFunc(true, nil)

	mgr, err := asynq.NewPeriodicTaskManager(
		asynq.PeriodicTaskManagerOpts{
			RedisUniversalClient:       s.r,
			PeriodicTaskConfigProvider: s,
			SyncInterval:               schedulerSyncInterval,
			SchedulerOpts: &asynq.SchedulerOpts{
				Logger:   &asynqLogger{inner: aplog.NewBuilder(s.logger).WithComponent("asynq-scheduler").Build()},
				LogLevel: asynq.InfoLevel,
			},
		},
	)
	if err != nil {
		return errors.Wrap(err, "error creating periodic task manager")
	}

	if err := mgr.Start(); err != nil {
		s.healthCheckFunc(false, err)
		return errors.Wrap(err, "error starting periodic task manager")
	}

	s.mgr = mgr
	s.healthCheckFunc(true, nil)
	s.logger.Info("Scheduler is running")

	s.wg.Add(1)
	go s.holdLock(ctx)

	return nil
}

// holdLock extends the ownership lock until shutdown. Losing the lock stops scheduling on this replica so another
// one can take over.
func (s *scheduler) holdLock(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case <-time.After(schedulerLockTime / 2):
			s.logger.Debug("Extending scheduler ownership lock")
			if err := s.rsMtx.Extend(ctx, schedulerLockTime); err != nil {
				s.logger.Info("Shutting down scheduler due to failure to extend the scheduler ownership lock", "error", err)
				s.shutdown()
				_ = s.rsMtx.Unlock(ctx)
				s.healthCheckFunc(false, nil)
				return
			}
			s.healthCheckFunc(true, nil)
		}
	}
}

func (s *scheduler) shutdown() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.mgr != nil {
		s.mgr.Shutdown()
		s.logger.Info("Async scheduler shutdown complete")
		s.mgr = nil
	}
}

// tryAcquire attempts to become the scheduling replica. It returns an error only for failures that should stop
// the worker; lock contention is not one of them.
func (s *scheduler) tryAcquire(ctx context.Context) (acquired bool, err error) {
	if s.isRunning() {
		return true, nil
	}

	err = s.rsMtx.Lock(ctx)
	if err != nil {
		if apredis.MutexIsErrNotObtained(err) {
			s.healthCheckFunc(false, nil)
			return false, nil
		}

		s.healthCheckFunc(false, err)
		return false, errors.Wrap(err, "failed to obtain lock for scheduler")
	}

	if err := s.start(ctx); err != nil {
		s.shutdown()
		_ = s.rsMtx.Unlock(ctx)
		return false, err
	}

	return true, nil
}

// stop ends Run. Safe to call more than once.
func (s *scheduler) stop() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Run competes for the scheduler lock until the process is signalled to stop.
func (s *scheduler) Run() error {
	ctx := context.Background()
	defer s.wg.Wait()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case <-sigChan:
			s.logger.Info("Received termination signal")
			s.stop()
		case <-s.done:
		}
	}()

	var lastErr error
	for {
		select {
		case <-s.done:
			s.logger.Info("Shutting down scheduler watchdog")
			s.shutdown()
			_ = s.rsMtx.Unlock(ctx)
			return nil
		default:
			if _, err := s.tryAcquire(ctx); err != nil {
				if lastErr == nil {
					s.logger.Error("Failed to obtain lock for scheduler", "error", err)
				}
				lastErr = err
			} else {
				lastErr = nil
			}

			time.Sleep(300 * time.Millisecond)
		}
	}
}
