package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Admit adds a freshly connected player to the room and runs the admission
// sequence: private info first, then a catch-up of the active round (image
// notice plus the circles drawn so far), then the refreshed player list and
// a join notice for everyone.
//
// The player becomes host exactly when the list was empty at the moment of
// the append; any pending cleanup is cancelled first.
func (r *Room) Admit(p *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelCleanupLocked()
	if len(r.players) == 0 {
		p.Info.IsHost = true
	}
	r.players = append(r.players, p)

	log.Info().Str("room", r.code).Str("player", p.Info.PublicID).
		Bool("host", p.Info.IsHost).Msg("player joined")

	r.sendEventLocked(p, "PrivateInfo", privateInfo{PrivateID: p.privateID, Info: p.Info})
	if r.round != nil {
		r.sendEventLocked(p, "NewImage", newImageNotice{
			Dimensions: r.round.Dimensions,
			AnswerHint: MakeHint(r.round.answer),
		})
		if len(r.round.circles) > 0 {
			r.sendEventLocked(p, "CircleSequence", r.round.circles)
		}
	}
	r.broadcastPlayerListLocked()
	r.broadcastServerMessageLocked(fmt.Sprintf("%s joined", p.Info.Name))
}

// RemovePlayer removes the player with the given private id, promoting the
// next player in join order when the host leaves and arming the cleanup
// timer when the room empties.
func (r *Room) RemovePlayer(privateID string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removePlayerLocked(privateID)
}

func (r *Room) removePlayerLocked(privateID string) (*Player, error) {
	idx := -1
	for i, p := range r.players {
		if p.privateID == privateID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrPlayerNotFound
	}

	removed := r.players[idx]
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	// The sink is closed under the same lock every enqueue runs under.
	removed.gone = true
	close(removed.outbound)

	if removed.Info.IsHost && len(r.players) > 0 {
		// Wrap to the front when the departing host held the last slot.
		if idx == len(r.players) {
			idx = 0
		}
		r.players[idx].Info.IsHost = true
	}

	if len(r.players) == 0 {
		r.scheduleCleanupLocked(r.grace)
	}
	return removed, nil
}

// StartRound installs a new round. The existing round, if any, stays: the
// host has to wait the current one out.
func (r *Room) StartRound(round *Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startRoundLocked(round)
}

func (r *Room) startRoundLocked(round *Round) error {
	if r.round != nil {
		return ErrRoundActive
	}
	r.round = round

	log.Info().Str("room", r.code).Msg("round started")

	r.broadcastEventLocked("NewImage", newImageNotice{
		Dimensions: round.Dimensions,
		AnswerHint: MakeHint(round.answer),
	})
	return nil
}

// StartRoundFrom is the HTTP upload path: the caller proves control of a
// player via the private id, and only the host may install a round.
func (r *Room) StartRoundFrom(privateID string, round *Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, err := r.playerLocked(privateID)
	if err != nil {
		return err
	}
	if !player.Info.IsHost {
		return ErrNotHost
	}
	return r.startRoundLocked(round)
}

// EndRound resets every answer flag, rotates the host once, tells everyone
// how the round went, and clears the round.
func (r *Room) EndRound() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endRoundLocked()
}

func (r *Room) endRoundLocked() {
	if len(r.players) == 0 {
		// A round cannot outlive its players; nothing to do.
		return
	}

	for _, p := range r.players {
		p.Info.HasAnswer = false
	}
	r.advanceHostLocked()

	r.broadcastSourceImageLocked()
	r.broadcastPlayerListLocked()
	if r.round != nil {
		r.broadcastServerMessageLocked(fmt.Sprintf("The answer was %q", r.round.answer))
	} else {
		log.Error().Str("room", r.code).Msg("ending a round that does not exist")
	}
	r.round = nil

	log.Info().Str("room", r.code).Msg("round ended")
}

// AdvanceHost rotates the host to the next player in join order without
// touching the round. Used for an explicit host pass between rounds.
func (r *Room) AdvanceHost() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advanceHostLocked()
}

func (r *Room) advanceHostLocked() {
	hostIdx := -1
	for i, p := range r.players {
		if p.Info.IsHost {
			hostIdx = i
			break
		}
	}
	if hostIdx == -1 {
		log.Error().Str("room", r.code).Msg("no host in a non-empty room")
		return
	}
	r.players[hostIdx].Info.IsHost = false
	r.players[(hostIdx+1)%len(r.players)].Info.IsHost = true
}

func (r *Room) playerLocked(privateID string) (*Player, error) {
	for _, p := range r.players {
		if p.privateID == privateID {
			return p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

// Players returns a snapshot of the public info in join order.
func (r *Room) Players() []PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		infos = append(infos, p.Info)
	}
	return infos
}

// CurrentRound returns the active round, or nil between rounds.
func (r *Room) CurrentRound() *Round {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.round
}

// ScheduleCleanup arms the delayed-deletion timer, replacing any pending
// one. Used by the registry right after room creation so rooms nobody ever
// joins get reaped too.
func (r *Room) ScheduleCleanup(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduleCleanupLocked(d)
}

func (r *Room) scheduleCleanupLocked(d time.Duration) {
	r.cancelCleanupLocked()

	task := &cleanupTask{}
	task.timer = time.AfterFunc(d, func() {
		if task.cancelled.Load() {
			return
		}
		r.reaper.reapIfEmpty(r.code)
	})
	r.cleanup = task

	log.Debug().Str("room", r.code).Dur("grace", d).Msg("cleanup scheduled")
}

func (r *Room) cancelCleanupLocked() {
	if r.cleanup == nil {
		return
	}
	r.cleanup.cancel()
	r.cleanup = nil
	log.Debug().Str("room", r.code).Msg("cleanup cancelled")
}

// isEmpty is used by the registry during reaping; the registry holds its
// own lock at that point but never this room's.
func (r *Room) isEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players) == 0
}
