package game

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Handler exposes the game over HTTP: room creation, the websocket join
// endpoint, and the image upload that starts a round.
type Handler struct {
	registry       *Registry
	upgrader       websocket.Upgrader
	maxMessageSize int64
	maxImageBytes  int64
	pingPeriod     time.Duration
	pongWait       time.Duration
}

func NewHandler(registry *Registry, maxMessageSize int64, pingPeriod time.Duration) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		maxMessageSize: maxMessageSize,
		maxImageBytes:  8 << 20,
		pingPeriod:     pingPeriod,
		pongWait:       pingPeriod + pingPeriod/2,
	}
}

// CreateRoomHandler makes an empty room and hands back its code plus the
// join path.
func (h *Handler) CreateRoomHandler(ctx *gin.Context) {
	code := h.registry.CreateRoom()
	ctx.JSON(http.StatusOK, gin.H{
		"id":   code,
		"path": fmt.Sprintf("/join/%s", code),
	})
}

// JoinRoomHandler upgrades to a websocket and runs the name handshake
// before admitting the player. The room is resolved before the upgrade so
// an unknown code still gets a plain 404.
func (h *Handler) JoinRoomHandler(ctx *gin.Context) {
	code := ctx.Param("room_id")
	room, ok := h.registry.GetRoom(code)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room-not-found"})
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Str("room", code).Err(err).Msg("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(h.maxMessageSize)
	session := NewWebsocketSession(conn, h.pongWait)

	name, err := awaitPlayerName(session)
	if err != nil {
		log.Debug().Str("room", code).Err(err).Msg("name handshake failed")
		session.Close("expected PlayerName")
		return
	}

	player := NewPlayer(name, session)
	room.Admit(player)
	go player.WritePump(h.pingPeriod)
	go player.ReadPump(room)
}

// awaitPlayerName reads the handshake frame. The first text frame must be
// a PlayerName event with a usable name.
func awaitPlayerName(session NetworkSession) (string, error) {
	messageType, data, err := session.Read()
	if err != nil {
		return "", err
	}
	if messageType != websocket.TextMessage {
		return "", fmt.Errorf("handshake frame was not text")
	}
	ev, err := ParseInboundEvent(data)
	if err != nil {
		return "", err
	}
	if ev.PlayerName == nil {
		return "", fmt.Errorf("first event was not PlayerName")
	}
	name := strings.TrimSpace(*ev.PlayerName)
	if name == "" {
		return "", fmt.Errorf("empty player name")
	}
	return name, nil
}

type uploadRoundRequest struct {
	ImageData       string    `json:"image_data"`
	ImageDimensions [2]uint32 `json:"image_dimensions"`
	Answer          string    `json:"answer"`
}

// UploadImageHandler installs a new round from an out-of-band upload. The
// room-id and private-id headers identify the caller; only the current
// host gets through.
func (h *Handler) UploadImageHandler(ctx *gin.Context) {
	roomID := ctx.GetHeader("room-id")
	privateID := ctx.GetHeader("private-id")
	if roomID == "" || privateID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing-identity-headers"})
		return
	}

	room, ok := h.registry.GetRoom(roomID)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room-not-found"})
		return
	}

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxImageBytes)
	var req uploadRoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid-body"})
		return
	}
	imageData, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid-image-data"})
		return
	}

	round := NewRound(req.ImageDimensions, imageData, req.Answer)
	switch err := room.StartRoundFrom(privateID, round); err {
	case nil:
		ctx.JSON(http.StatusOK, gin.H{"status": "round-started"})
	case ErrPlayerNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": "player-not-found"})
	case ErrNotHost:
		ctx.JSON(http.StatusForbidden, gin.H{"error": "not-host"})
	case ErrRoundActive:
		ctx.JSON(http.StatusConflict, gin.H{"error": "round-already-active"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
	}
}
