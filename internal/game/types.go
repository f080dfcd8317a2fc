package game

import (
	"sync"
	"sync/atomic"
	"time"
)

// Round is one image-guessing game within a room. The answer is stored
// lowercase; circles are append-only until the round is replaced or ends.
type Round struct {
	Dimensions [2]uint32
	ImageData  []byte
	answer     string
	circles    []Circle
}

func NewRound(dimensions [2]uint32, imageData []byte, answer string) *Round {
	return &Round{
		Dimensions: dimensions,
		ImageData:  imageData,
		answer:     normalizeAnswer(answer),
	}
}

func (rd *Round) Answer() string {
	return rd.answer
}

func (rd *Round) Circles() []Circle {
	return rd.circles
}

func (rd *Round) isCorrectAnswer(guess string) bool {
	return rd.answer == normalizeAnswer(guess)
}

// roomReaper is the registry's side of the cleanup contract: delete the
// room, but only if it is still empty when asked.
type roomReaper interface {
	reapIfEmpty(code string)
}

// cleanupTask is an abortable delayed deletion. Cancellation sets the flag
// and stops the timer; the fire handler checks the flag in case the stop
// raced the firing, and reapIfEmpty re-validates emptiness on top of that.
type cleanupTask struct {
	timer     *time.Timer
	cancelled atomic.Bool
}

func (t *cleanupTask) cancel() {
	t.cancelled.Store(true)
	t.timer.Stop()
}

// Room is an isolated game session. All mutable state below the mutex is
// guarded by it; every mutation helper with a Locked suffix expects the
// caller to hold it.
type Room struct {
	code   string
	reaper roomReaper
	grace  time.Duration

	mu      sync.RWMutex
	players []*Player
	round   *Round
	cleanup *cleanupTask
}

func NewRoom(code string, reaper roomReaper, grace time.Duration) *Room {
	return &Room{
		code:   code,
		reaper: reaper,
		grace:  grace,
	}
}

func (r *Room) Code() string {
	return r.code
}
