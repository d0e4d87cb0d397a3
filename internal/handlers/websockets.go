package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"house_rental/internal/models"
	"house_rental/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Origins are enforced by the CORS layer in front of the router.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// activityCursor tracks what a connection has already seen for one actor. The store filter
// is inclusive, so entries at the cursor instant are deduplicated by id.
type activityCursor struct {
	actor string
	since time.Time
	seen  map[string]struct{}
}

func newActivityCursor(actor string, since time.Time) *activityCursor {
	return &activityCursor{actor: actor, since: since.UTC(), seen: map[string]struct{}{}}
}

// advance drops already delivered entries and moves the cursor forward.
func (cur *activityCursor) advance(entries []models.Activity) []models.Activity {
	fresh := make([]models.Activity, 0, len(entries))
	for _, a := range entries {
		if _, ok := cur.seen[a.ID]; ok {
			continue
		}
		fresh = append(fresh, a)
	}
	for _, a := range fresh {
		if a.OccurredAt.After(cur.since) {
			cur.since = a.OccurredAt
			cur.seen = map[string]struct{}{}
		}
	}
	for _, a := range fresh {
		if a.OccurredAt.Equal(cur.since) {
			cur.seen[a.ID] = struct{}{}
		}
	}
	return fresh
}

// @Summary      Activity feed
// @Description  Websocket stream of the caller's new activity entries. Accepts ?since=<RFC3339> to replay, ?interval=2s to tune polling.
// @Tags         activity
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /ws/activity [get]
// @Security     BearerAuth
func (h *Handler) wsActivity(c *gin.Context) {
	interval := h.parseInterval(c)
	since := time.Now().UTC()
	if qs := c.Query("since"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errSinceInvalid})
			return
		}
		since = t
	}
	cursor := newActivityCursor(currentUser(c), since)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendActivity(ctx, conn, cursor); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendActivity(ctx, conn, cursor); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendActivity writes entries newer than the cursor. Empty polls write nothing.
func (h *Handler) sendActivity(ctx context.Context, conn *websocket.Conn, cursor *activityCursor) error {
	entries, err := h.services.Activity.List(ctx, service.ActivityFilter{From: cursor.since, Actor: cursor.actor})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_list_activity_failed", "err", err)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(wsEnvelope{Type: "error", Error: "failed to load activity"})
	}
	fresh := cursor.advance(entries)
	if len(fresh) == 0 {
		return nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "activity", Data: fresh})
}
