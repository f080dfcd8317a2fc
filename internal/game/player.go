package game

import (
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const outboundQueueSize = 256

// PlayerInfo is the public-facing slice of a player. Safe to broadcast to
// the whole room.
type PlayerInfo struct {
	Name      string `json:"name"`
	PublicID  string `json:"public_id"`
	IsHost    bool   `json:"is_host"`
	HasAnswer bool   `json:"has_answer"`
}

// outboundFrame is one queued wire message. Binary frames carry the round's
// source image; everything else is JSON text.
type outboundFrame struct {
	binary bool
	data   []byte
}

// Player couples a room membership with its live connection. The privateID
// is a capability token revealed only to the owning connection; everyone
// else sees PublicID.
//
// The outbound channel is written by many goroutines, always under the
// owning room's lock, and drained by exactly one WritePump. The room closes
// it under the same lock when the player is removed, so an enqueue can
// never race the close.
type Player struct {
	privateID string
	Info      PlayerInfo
	socket    NetworkSession
	limiter   *rate.Limiter
	outbound  chan outboundFrame
	gone      bool
}

func NewPlayer(name string, socket NetworkSession) *Player {
	return &Player{
		privateID: uuid.NewString(),
		Info: PlayerInfo{
			Name:     name,
			PublicID: uuid.NewString(),
		},
		socket:   socket,
		limiter:  rate.NewLimiter(rate.Limit(60), 120),
		outbound: make(chan outboundFrame, outboundQueueSize),
	}
}

func (p *Player) PrivateID() string {
	return p.privateID
}

// enqueue pushes a frame onto the player's outbound queue without ever
// blocking the room lock. A player whose queue is full is too far behind
// to care about this frame.
func (p *Player) enqueue(f outboundFrame) {
	if p.gone {
		return
	}
	select {
	case p.outbound <- f:
	default:
	}
}
