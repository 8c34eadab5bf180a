package httpapi

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/snake-env/internal/config"
	"github.com/vovakirdan/snake-env/internal/core"
	"github.com/vovakirdan/snake-env/internal/gym"
	"github.com/vovakirdan/snake-env/internal/registry"
	"github.com/vovakirdan/snake-env/internal/snake"
)

// CreateRequest is the body of POST /v1/instances.
type CreateRequest struct {
	Env    string `json:"env"`
	Seed   int64  `json:"seed"`
	Preset string `json:"preset"`
}

// StepRequest is the body of a step call and of websocket messages.
// Reset starts a new episode instead of stepping.
type StepRequest struct {
	Action *int `json:"action"`
	Reset  bool `json:"reset,omitempty"`
}

// ObservationJSON is the wire form of an observation.
type ObservationJSON struct {
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Cells [][]int `json:"cells"`
}

// StepResponse is returned by reset and step calls.
type StepResponse struct {
	ID          string          `json:"id"`
	Env         string          `json:"env"`
	Observation ObservationJSON `json:"observation"`
	Reward      float64         `json:"reward"`
	Done        bool            `json:"done"`
	Info        core.Info       `json:"info"`
	Stats       gym.Stats       `json:"stats"`
}

func encodeObservation(obs core.Observation) ObservationJSON {
	out := ObservationJSON{Rows: obs.Rows, Cols: obs.Cols, Cells: make([][]int, obs.Rows)}
	for r := range obs.Rows {
		row := make([]int, obs.Cols)
		for c := range obs.Cols {
			row[c] = int(obs.At(core.Pt(r, c)))
		}
		out.Cells[r] = row
	}
	return out
}

func errorJSON(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) listEnvs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"envs": registry.List()})
}

func (s *Server) createInstance(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	if req.Env == "" {
		req.Env = gym.EnvSnake
	}

	cfg := s.opts.Base
	preset, err := config.ParsePreset(req.Preset)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	config.ApplyPreset(&cfg, preset)
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}

	env, err := gym.Create(req.Env, cfg)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	obs, err := env.Reset()
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	id, err := s.add(env)
	if err != nil {
		errorJSON(c, http.StatusServiceUnavailable, err)
		return
	}

	c.JSON(http.StatusCreated, StepResponse{
		ID:          id,
		Env:         env.ID(),
		Observation: encodeObservation(obs),
		Info:        env.Info(),
		Stats:       env.Stats(),
	})
}

// withInstance looks up :id and runs fn with the instance locked.
func (s *Server) withInstance(c *gin.Context, fn func(id string, inst *instance)) {
	id := c.Param("id")
	inst, ok := s.get(id)
	if !ok {
		errorJSON(c, http.StatusNotFound, errors.New("unknown instance"))
		return
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	fn(id, inst)
}

func (s *Server) resetInstance(c *gin.Context) {
	s.withInstance(c, func(id string, inst *instance) {
		resp, err := s.reset(id, inst)
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	})
}

func (s *Server) stepInstance(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	if req.Action == nil {
		errorJSON(c, http.StatusBadRequest, errors.New("missing action"))
		return
	}

	s.withInstance(c, func(id string, inst *instance) {
		resp, err := s.step(id, inst, *req.Action)
		switch {
		case errors.Is(err, snake.ErrInvalidAction):
			errorJSON(c, http.StatusBadRequest, err)
		case err != nil:
			errorJSON(c, http.StatusConflict, err)
		default:
			c.JSON(http.StatusOK, resp)
		}
	})
}

func (s *Server) renderInstance(c *gin.Context) {
	s.withInstance(c, func(_ string, inst *instance) {
		img, err := inst.env.Render(registry.RenderRGBArray)
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, err)
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			errorJSON(c, http.StatusInternalServerError, err)
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	})
}

func (s *Server) deleteInstance(c *gin.Context) {
	if !s.remove(c.Param("id")) {
		errorJSON(c, http.StatusNotFound, errors.New("unknown instance"))
		return
	}
	c.Status(http.StatusNoContent)
}

// reset and step run with inst.mu held.

func (s *Server) reset(id string, inst *instance) (StepResponse, error) {
	obs, err := inst.env.Reset()
	if err != nil {
		return StepResponse{}, err
	}
	inst.saved = false
	return StepResponse{
		ID:          id,
		Env:         inst.env.ID(),
		Observation: encodeObservation(obs),
		Info:        inst.env.Info(),
		Stats:       inst.env.Stats(),
	}, nil
}

func (s *Server) step(id string, inst *instance, action int) (StepResponse, error) {
	res, err := inst.env.Step(action)
	if errors.Is(err, snake.ErrInvalidAction) {
		return StepResponse{}, err
	}
	s.saveIfDone(inst)
	if err != nil {
		return StepResponse{}, err
	}
	return StepResponse{
		ID:          id,
		Env:         inst.env.ID(),
		Observation: encodeObservation(res.Observation),
		Reward:      res.Reward,
		Done:        res.Done,
		Info:        res.Info,
		Stats:       inst.env.Stats(),
	}, nil
}
