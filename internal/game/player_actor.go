package game

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ReadPump drains inbound frames from the wire into the room's event
// handler. It runs until the connection fails or closes, then triggers the
// disconnect path exactly once.
func (p *Player) ReadPump(room *Room) {
	defer room.HandleDisconnect(p.privateID)

	for {
		messageType, data, err := p.socket.Read()
		if err != nil {
			log.Debug().Str("room", room.Code()).Str("player", p.Info.PublicID).Err(err).
				Msg("read pump closing")
			return
		}
		if !p.limiter.Allow() {
			log.Warn().Str("player", p.Info.PublicID).Msg("inbound rate limit hit, dropping frame")
			continue
		}
		if messageType != websocket.TextMessage {
			// Image upload happens over HTTP; stray binary frames carry nothing we want.
			continue
		}

		ev, err := ParseInboundEvent(data)
		if err != nil {
			log.Warn().Str("player", p.Info.PublicID).Err(err).Msg("dropping malformed event")
			continue
		}
		room.HandleEvent(p.privateID, ev)
	}
}

// WritePump is the sole consumer of the player's outbound queue. It also
// owns the ping ticker; a failed write or ping tears the connection down
// and lets ReadPump observe the closure.
func (p *Player) WritePump(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.socket.Close("")
	}()

	for {
		select {
		case frame, ok := <-p.outbound:
			if !ok {
				return
			}
			var err error
			if frame.binary {
				err = p.socket.WriteBinary(frame.data)
			} else {
				err = p.socket.WriteText(frame.data)
			}
			if err != nil {
				return
			}
		case <-ticker.C:
			if err := p.socket.Ping(); err != nil {
				return
			}
		}
	}
}
