// Package httpapi serves environment instances over HTTP and websockets.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-env/internal/config"
	"github.com/vovakirdan/snake-env/internal/gym"
	"github.com/vovakirdan/snake-env/internal/storage"
)

// ErrTooManyInstances is returned when the instance limit is reached.
var ErrTooManyInstances = errors.New("httpapi: too many instances")

// Options configures a Server.
type Options struct {
	// Base is the configuration every new instance starts from.
	Base config.SnakeConfig
	// Store receives finished episodes. Nil disables saving.
	Store *storage.Store
	// Logger receives request and episode logs. Nil uses a default logger.
	Logger *log.Logger
	// MaxInstances caps live instances. Zero means 64.
	MaxInstances int
}

// Server holds live environment instances keyed by ID.
type Server struct {
	opts   Options
	logger *log.Logger
	engine *gin.Engine

	mu        sync.RWMutex
	instances map[string]*instance
}

// instance serializes access to one environment.
type instance struct {
	mu    sync.Mutex
	env   *gym.SnakeEnv
	saved bool
}

// New builds a server and its routes.
func New(opts Options) *Server {
	if opts.MaxInstances <= 0 {
		opts.MaxInstances = 64
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("snake-api")
	}

	s := &Server{
		opts:      opts,
		logger:    logger,
		instances: make(map[string]*instance),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)

	v1 := r.Group("/v1")
	v1.GET("/envs", s.listEnvs)
	v1.POST("/instances", s.createInstance)
	v1.POST("/instances/:id/reset", s.resetInstance)
	v1.POST("/instances/:id/step", s.stepInstance)
	v1.GET("/instances/:id/render", s.renderInstance)
	v1.DELETE("/instances/:id", s.deleteInstance)
	v1.GET("/instances/:id/ws", s.streamInstance)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases every instance. Each env is closed under its own lock so
// in-flight steps finish first.
func (s *Server) Close() {
	s.mu.Lock()
	instances := s.instances
	s.instances = make(map[string]*instance)
	s.mu.Unlock()

	for _, inst := range instances {
		inst.mu.Lock()
		inst.env.Close()
		inst.mu.Unlock()
	}
}

// Len returns the number of live instances.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

func (s *Server) add(env *gym.SnakeEnv) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.instances) >= s.opts.MaxInstances {
		return "", fmt.Errorf("%w (limit %d)", ErrTooManyInstances, s.opts.MaxInstances)
	}
	id := uuid.NewString()
	s.instances[id] = &instance{env: env}
	return id, nil
}

func (s *Server) get(id string) (*instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	return inst, ok
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	inst, ok := s.instances[id]
	delete(s.instances, id)
	s.mu.Unlock()
	if ok {
		inst.mu.Lock()
		inst.env.Close()
		inst.mu.Unlock()
	}
	return ok
}

// saveIfDone stores a finished episode once. Caller holds inst.mu.
func (s *Server) saveIfDone(inst *instance) {
	stats := inst.env.Stats()
	if !stats.Done || inst.saved {
		return
	}
	inst.saved = true
	s.logger.Info("episode finished",
		"env", inst.env.ID(),
		"steps", stats.Steps,
		"length", stats.Length,
		"reward", stats.TotalReward,
		"death", stats.DeathCause,
	)
	if s.opts.Store == nil {
		return
	}
	if _, err := s.opts.Store.SaveEpisode(storage.Episode{
		EnvID:       inst.env.ID(),
		Seed:        inst.env.EpisodeSeed(),
		Steps:       stats.Steps,
		Length:      stats.Length,
		FoodEaten:   stats.FoodEaten,
		TotalReward: stats.TotalReward,
		DeathCause:  stats.DeathCause,
		Actions:     inst.env.Actions(),
	}); err != nil {
		s.logger.Warn("episode not saved", "error", err)
	}
}

// logRequests logs each request with charm log.
func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Info("request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}
