package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamMessage is sent back for every websocket request.
type streamMessage struct {
	*StepResponse
	Error string `json:"error,omitempty"`
}

// streamInstance upgrades to a websocket. Each client message is a
// StepRequest; each reply is a StepResponse or an error.
func (s *Server) streamInstance(c *gin.Context) {
	id := c.Param("id")
	inst, ok := s.get(id)
	if !ok {
		errorJSON(c, http.StatusNotFound, errors.New("unknown instance"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	s.logger.Info("stream opened", "instance", id, "remote", c.Request.RemoteAddr)

	for {
		var req StepRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("stream read failed", "instance", id, "error", err)
			}
			break
		}

		reply := s.handleStream(id, inst, req)
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("stream write failed", "instance", id, "error", err)
			break
		}
	}
	s.logger.Info("stream closed", "instance", id)
}

func (s *Server) handleStream(id string, inst *instance, req StepRequest) streamMessage {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	var (
		resp StepResponse
		err  error
	)
	switch {
	case req.Reset:
		resp, err = s.reset(id, inst)
	case req.Action == nil:
		err = errors.New("missing action")
	default:
		resp, err = s.step(id, inst, *req.Action)
	}
	if err != nil {
		return streamMessage{Error: err.Error()}
	}
	return streamMessage{StepResponse: &resp}
}
