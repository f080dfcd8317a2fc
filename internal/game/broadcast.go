package game

import (
	"github.com/rs/zerolog/log"
)

// sendEventLocked serializes an event and enqueues it for one player.
// Caller holds the room lock.
func (r *Room) sendEventLocked(p *Player, tag string, payload any) {
	data, err := marshalEvent(tag, payload)
	if err != nil {
		log.Error().Str("room", r.code).Str("event", tag).Err(err).Msg("failed to serialize event")
		return
	}
	p.enqueue(outboundFrame{data: data})
}

// broadcastEventLocked serializes once and fans out to every player in the
// room. Caller holds the room lock.
func (r *Room) broadcastEventLocked(tag string, payload any) {
	data, err := marshalEvent(tag, payload)
	if err != nil {
		log.Error().Str("room", r.code).Str("event", tag).Err(err).Msg("failed to serialize event")
		return
	}
	for _, p := range r.players {
		p.enqueue(outboundFrame{data: data})
	}
}

func (r *Room) broadcastPlayerListLocked() {
	infos := make([]PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		infos = append(infos, p.Info)
	}
	r.broadcastEventLocked("PlayerList", infos)
}

func (r *Room) broadcastServerMessageLocked(text string) {
	r.broadcastEventLocked("ServerMessage", text)
}

// broadcastSourceImageLocked pushes the round's original image to everyone
// as a binary frame. Rounds installed over the websocket path carry no
// image bytes, in which case there is nothing to reveal.
func (r *Room) broadcastSourceImageLocked() {
	if r.round == nil || len(r.round.ImageData) == 0 {
		return
	}
	for _, p := range r.players {
		p.enqueue(outboundFrame{binary: true, data: r.round.ImageData})
	}
}
