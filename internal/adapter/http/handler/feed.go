package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/checkin"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/fitpass/gym-checkin-system/pkg/metrics"
	"github.com/fitpass/gym-checkin-system/pkg/wshub"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var _ checkin.FeedNotifier = (*Feed)(nil)

// Feed serves the per-gym live check-in stream. A gym's dashboard opens
// a WebSocket and receives every check-in as it happens.
type Feed struct {
	connections *wshub.ConnectionHub
	upgrader    websocket.Upgrader
	serviceName string
	l           logger.Logger
}

func NewFeed(connHub *wshub.ConnectionHub, serviceName string, l logger.Logger) *Feed {
	return &Feed{
		connections: connHub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		serviceName: serviceName,
		l:           l,
	}
}

// HandleWS godoc
// @Summary      Live check-in feed for a gym
// @Description  Upgrades to a WebSocket that streams check-ins for the gym.
// @Tags         CheckIns
// @Param        gym_id  path  string  true  "Gym ID"
// @Router       /ws/gyms/{gym_id} [get]
func (h *Feed) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "gym_feed_ws")

	gymID, err := readUUIDParam(r, "gym_id")
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}
	ctx = wrap.WithGymID(ctx, gymID.String())

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Error(ctx, "failed to upgrade connection", err)
		return
	}

	conn := wshub.NewConn(ctx, gymID, wsConn)
	if err := h.connections.Add(conn); err != nil {
		h.l.Error(ctx, "failed to register feed connection", err)
		_ = wsConn.Close()
		return
	}

	metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Inc()
	defer metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Dec()

	h.l.Info(ctx, "gym feed connected")

	// The feed is write-only; reads only detect disconnects.
	if err := conn.Listen(func(msg any) error { return nil }); err != nil {
		h.l.Debug(ctx, "gym feed disconnected", "reason", err.Error())
	}

	h.connections.Remove(conn)
}

// NotifyCheckIn pushes a check-in to the gym's connected dashboard.
func (h *Feed) NotifyCheckIn(gymID uuid.UUID, checkIn *models.CheckIn) error {
	const op = "Feed.NotifyCheckIn"

	var msg map[string]any
	data, err := json.Marshal(checkIn)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	msg["type"] = "checkin.created"

	if err := h.connections.SendTo(gymID, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
