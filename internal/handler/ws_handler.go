package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/porikkha/porikkha-backend/internal/config"
	"github.com/porikkha/porikkha-backend/internal/middleware"
	"github.com/porikkha/porikkha-backend/internal/service"
	ws "github.com/porikkha/porikkha-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live proctoring violations to invigilators.
type WSHandler struct {
	rdb         *redis.Client
	examService *service.ExamService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, examService *service.ExamService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:         rdb,
		examService: examService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// InvigilatorFeed godoc
// WS /ws/v1/admin/exams/:exam_id/proctoring
// Upgrades to WebSocket and relays violation events for one exam as they
// are reported. Each violation is forwarded the moment the reporting
// endpoint publishes it.
func (h *WSHandler) InvigilatorFeed(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exam ID"})
		return
	}

	if _, err := h.examService.GetExam(c.Request.Context(), examID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exam not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("admin_id", claims.AdminID).
		Str("exam_id", examID.String()).
		Logger()

	wsLog.Info().Msg("Invigilator connected")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.ProctoringChannel(examID.String()))
	defer sub.Close()

	ws.WriteTyped(conn, ws.ConnectedResponse{Event: ws.EventConnected, ExamID: examID.String()})

	// Reader goroutine: answers pings and detects the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			switch msg.Action {
			case ws.ActionPing:
				ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-done:
			return
		case msg, ok := <-ch:
			if !ok {
				wsLog.Warn().Msg("Pub/Sub channel closed")
				return
			}
			if err := ws.WriteTyped(conn, ws.ViolationResponse{
				Event:   ws.EventViolation,
				Payload: json.RawMessage(msg.Payload),
			}); err != nil {
				wsLog.Debug().Err(err).Msg("Relay write failed")
				return
			}
		}
	}
}
