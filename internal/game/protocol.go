package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// HandleEvent validates one inbound event against the room's current state
// and applies it. Events for a room are serialized by its lock, so the
// effects of each one are observed in a single consistent order.
//
// Authorization is re-checked against live state on every event; host
// identity rotates mid-session, so nothing from the join handshake can be
// trusted here.
func (r *Room) HandleEvent(privateID string, ev InboundEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case ev.ChatMessage != nil:
		if err := r.handleChatLocked(privateID, *ev.ChatMessage); err != nil {
			log.Debug().Str("room", r.code).Err(err).Msg("chat message dropped")
		}
	case ev.Circle != nil:
		r.handleCircleLocked(privateID, *ev.Circle)
	case ev.NewImage != nil:
		r.handleNewImageLocked(privateID, *ev.NewImage)
	case ev.GiveUp:
		r.handleGiveUpLocked(privateID)
	case ev.Pass:
		r.handlePassLocked(privateID)
	case ev.PlayerName != nil:
		log.Warn().Str("room", r.code).Msg("PlayerName received after handshake, dropped")
	}
}

func (r *Room) handleChatLocked(privateID, text string) error {
	if text == "" {
		return fmt.Errorf("empty message")
	}
	sender, err := r.playerLocked(privateID)
	if err != nil {
		return err
	}

	if r.round == nil {
		// No round in progress, chat is just chat.
		r.broadcastEventLocked("ChatMessage", chatLine{Name: sender.Info.Name, Text: text})
		return nil
	}

	if sender.Info.HasAnswer || sender.Info.IsHost {
		// Players who already know the answer talk among themselves so the
		// remaining guessers cannot read spoilers.
		line := chatLine{Name: sender.Info.Name, Text: text}
		data, err := marshalEvent("SecretChatMessage", line)
		if err != nil {
			return err
		}
		for _, p := range r.players {
			if p.Info.HasAnswer || p.Info.IsHost {
				p.enqueue(outboundFrame{data: data})
			}
		}
		return nil
	}

	if r.round.isCorrectAnswer(text) {
		r.markAnsweredLocked(sender)
		return nil
	}

	r.broadcastEventLocked("ChatMessage", chatLine{Name: sender.Info.Name, Text: text})
	return nil
}

// markAnsweredLocked records a finished guesser: reveal the answer to them
// privately, refresh the player list, announce it, and end the round once
// every non-host player is done.
func (r *Room) markAnsweredLocked(p *Player) {
	p.Info.HasAnswer = true
	r.sendEventLocked(p, "Answer", r.round.answer)
	r.broadcastPlayerListLocked()
	r.broadcastServerMessageLocked(fmt.Sprintf("%s got it right", p.Info.Name))

	for _, other := range r.players {
		if !other.Info.IsHost && !other.Info.HasAnswer {
			return
		}
	}
	r.endRoundLocked()
}

func (r *Room) handleCircleLocked(privateID string, c Circle) {
	sender, err := r.playerLocked(privateID)
	if err != nil {
		return
	}
	if !sender.Info.IsHost {
		log.Warn().Str("room", r.code).Str("player", sender.Info.PublicID).
			Msg("rejecting circle from non-host")
		return
	}
	if r.round == nil {
		return
	}
	r.round.circles = append(r.round.circles, c)
	r.broadcastEventLocked("Circle", c)
}

func (r *Room) handleNewImageLocked(privateID string, req NewImageRequest) {
	sender, err := r.playerLocked(privateID)
	if err != nil {
		return
	}
	if !sender.Info.IsHost {
		log.Warn().Str("room", r.code).Str("player", sender.Info.PublicID).
			Msg("rejecting new image from non-host")
		return
	}
	if err := r.startRoundLocked(NewRound(req.Dimensions, nil, req.Answer)); err != nil {
		log.Warn().Str("room", r.code).Err(err).Msg("rejecting new image")
	}
}

func (r *Room) handleGiveUpLocked(privateID string) {
	sender, err := r.playerLocked(privateID)
	if err != nil {
		return
	}
	if r.round == nil {
		return
	}
	if sender.Info.IsHost {
		log.Warn().Str("room", r.code).Str("player", sender.Info.PublicID).
			Msg("rejecting give-up from host")
		return
	}
	if sender.Info.HasAnswer {
		return
	}
	r.markAnsweredLocked(sender)
}

func (r *Room) handlePassLocked(privateID string) {
	sender, err := r.playerLocked(privateID)
	if err != nil {
		return
	}
	if r.round != nil {
		return
	}
	if !sender.Info.IsHost {
		log.Warn().Str("room", r.code).Str("player", sender.Info.PublicID).
			Msg("rejecting pass from non-host")
		return
	}
	r.advanceHostLocked()
	r.broadcastPlayerListLocked()
}

// HandleDisconnect runs when a player's read pump winds down: removal,
// host handoff, a leave notice, and either the refreshed player list or an
// armed cleanup timer when nobody is left.
func (r *Room) HandleDisconnect(privateID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, err := r.removePlayerLocked(privateID)
	if err != nil {
		// Disconnects always belong to an admitted player; this is a bug.
		log.Error().Str("room", r.code).Str("private_id", privateID).Err(err).
			Msg("disconnect for unknown player")
		return
	}

	log.Info().Str("room", r.code).Str("player", removed.Info.PublicID).Msg("player left")

	r.broadcastServerMessageLocked(fmt.Sprintf("%s left", removed.Info.Name))
	if len(r.players) > 0 {
		r.broadcastPlayerListLocked()
	}
}
