package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/porikkha/porikkha-backend/internal/config"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SystemHandler reports process health and queue depth.
type SystemHandler struct {
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type systemStatus struct {
	Status         string `json:"status"`
	Uptime         string `json:"uptime"`
	Goroutines     int    `json:"goroutines"`
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	TelemetryQueue int64  `json:"telemetry_queue"`
	RedisOK        bool   `json:"redis_ok"`
}

// Health godoc
// GET /healthz
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status godoc
// GET /api/v1/admin/system/status
func (h *SystemHandler) Status(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	st := systemStatus{
		Status:         "ok",
		Uptime:         time.Since(h.startTime).Round(time.Second).String(),
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: mem.HeapAlloc,
		RedisOK:        true,
	}

	depth, err := h.rdb.LLen(c.Request.Context(), config.WorkerKey.PersistTelemetryQueue).Result()
	if err != nil {
		h.log.Warn().Err(err).Msg("telemetry queue depth check failed")
		st.RedisOK = false
	} else {
		st.TelemetryQueue = depth
	}

	response.Success(c, http.StatusOK, st)
}
