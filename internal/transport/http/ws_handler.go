package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// WSHandler serves the live quiz view: the client sends selections and validation requests
// and receives a freshly rendered model after each one.
type WSHandler struct {
	service   *app.QuizService
	logger    *zap.Logger
	upgrader  websocket.Upgrader
	writeWait time.Duration
}

// defaultWriteWait bounds each write to a client that stopped reading.
const defaultWriteWait = 10 * time.Second

func NewWSHandler(service *app.QuizService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		writeWait: defaultWriteWait,
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Question int    `json:"question"`
	Answer   string `json:"answer"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs the select/validate loop for the caller's session.
// The selection and last result live only as long as the connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	model, err := h.service.View(ctx, id, nil)
	if err != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: wsErrorMessage(err)}})
		return
	}

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})

	// single writer; gorilla connections allow one concurrent writer
	go func() {
		defer close(writerDone)
		for msg := range send {
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write failed", zap.Error(err))
				// unblocks the pending read so the handler can return
				_ = conn.Close()
				return
			}
		}
	}()

	// push reports false once the writer is gone
	push := func(msg outboundMessage) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		}
	}
	fail := func(msg string) bool {
		return push(outboundMessage{Type: "error", Payload: errorPayload{Message: msg}})
	}

	sel := domain.AnswerSelection{}
	var validated bool
	alive := push(outboundMessage{Type: "view", Payload: model})
	for alive {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}

		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				alive = fail("invalid select payload")
				continue
			}
			next, err := h.service.Select(ctx, id, sel, payload.Question, payload.Answer)
			if err != nil {
				alive = fail(wsErrorMessage(err))
				continue
			}
			sel = next
		case "validate":
			validated = true
		default:
			alive = fail("unsupported message type")
			continue
		}

		// once validated, every later change is re-scored so marks never go stale
		if validated {
			model, err = h.service.Validate(ctx, id, sel)
		} else {
			model, err = h.service.View(ctx, id, sel)
		}
		if err != nil {
			alive = fail(wsErrorMessage(err))
			continue
		}
		alive = push(outboundMessage{Type: "view", Payload: model})
	}

	close(send)
	<-writerDone
}

func wsErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return "No quiz found. Go back to start page."
	case errors.Is(err, domain.ErrQuestionNotFound), errors.Is(err, domain.ErrOptionNotFound):
		return err.Error()
	default:
		return "internal error"
	}
}
