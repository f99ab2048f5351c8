package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"adapter-quiz-service/internal/app"
	"adapter-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string   `json:"questionId"`
	OptionIDs  []string `json:"optionIds"`
}

type answerAck struct {
	QuestionID string  `json:"questionId"`
	Confidence float64 `json:"confidence"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ServeWS upgrades HTTP requests to websockets and drives the quiz loop:
// the server sends a batch, the client answers each question, "next" plans
// the following batch, and termination delivers the recommendations.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if !h.sendBatchOrResults(conn, r, sessionID) {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid answer payload", false)
				continue
			}
			confidence, err := h.service.SubmitAnswer(r.Context(), sessionID, payload.QuestionID, payload.OptionIDs...)
			if err != nil {
				h.sendError(conn, err.Error(), errors.Is(err, domain.ErrCatalogUnavailable))
				continue
			}
			h.send(conn, "answerAck", answerAck{QuestionID: payload.QuestionID, Confidence: confidence})
		case "next":
			if !h.sendBatchOrResults(conn, r, sessionID) {
				return
			}
		case "finish":
			h.sendResults(conn, r, sessionID)
			h.service.End(r.Context(), sessionID)
			return
		default:
			h.sendError(conn, "unsupported message type", false)
		}
	}
}

// sendBatchOrResults plans the next batch; when the quiz is done it sends the
// recommendations instead. Returns false once the session is finished.
func (h *WSHandler) sendBatchOrResults(conn *websocket.Conn, r *http.Request, sessionID string) bool {
	batch, done, err := h.service.NextBatch(r.Context(), sessionID)
	if err != nil {
		// Keep the connection open: catalog outages are retryable via "next".
		h.sendError(conn, err.Error(), errors.Is(err, domain.ErrCatalogUnavailable))
		return true
	}
	if done {
		h.sendResults(conn, r, sessionID)
		h.service.End(r.Context(), sessionID)
		return false
	}
	h.send(conn, "batch", batch)
	return true
}

func (h *WSHandler) sendResults(conn *websocket.Conn, r *http.Request, sessionID string) {
	recommendation, err := h.service.Results(r.Context(), sessionID)
	if err != nil {
		h.sendError(conn, err.Error(), errors.Is(err, domain.ErrCatalogUnavailable))
		return
	}
	h.send(conn, "recommendations", recommendation)
}

func (h *WSHandler) send(conn *websocket.Conn, msgType string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string, retryable bool) {
	h.send(conn, "error", errorPayload{Message: message, Retryable: retryable})
}
