package game

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultEmptyGrace is how long an emptied room lingers before deletion.
	DefaultEmptyGrace = 60 * time.Second
	// DefaultUnjoinedTTL is how long a freshly created room waits for its
	// first player.
	DefaultUnjoinedTTL = 5 * time.Minute
)

// Registry is the shared map of live rooms. The lock guards the map only
// and is never held across I/O or a room's own lock acquisition on any
// path other than reaping, where the order is always registry before room.
type Registry struct {
	mu          sync.RWMutex
	rooms       map[string]*Room
	emptyGrace  time.Duration
	unjoinedTTL time.Duration
}

func NewRegistry(emptyGrace, unjoinedTTL time.Duration) *Registry {
	return &Registry{
		rooms:       make(map[string]*Room),
		emptyGrace:  emptyGrace,
		unjoinedTTL: unjoinedTTL,
	}
}

// CreateRoom generates an unused code, registers an empty room under it,
// and arms the unjoined-room cleanup timer.
func (reg *Registry) CreateRoom() string {
	reg.mu.Lock()
	var code string
	for {
		code = newRoomCode()
		if _, taken := reg.rooms[code]; !taken {
			break
		}
	}
	room := NewRoom(code, reg, reg.emptyGrace)
	reg.rooms[code] = room
	reg.mu.Unlock()

	room.ScheduleCleanup(reg.unjoinedTTL)

	log.Info().Str("room", code).Msg("room created")
	return code
}

func (reg *Registry) GetRoom(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	return room, ok
}

// DeleteRoom removes a room unconditionally. Idempotent: racing delete
// triggers are fine.
func (reg *Registry) DeleteRoom(code string) {
	reg.mu.Lock()
	delete(reg.rooms, code)
	reg.mu.Unlock()
}

// reapIfEmpty is the cleanup timer's target. The emptiness re-check is the
// second line of defense when a cancellation races the timer firing.
func (reg *Registry) reapIfEmpty(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[code]
	if !ok {
		return
	}
	if !room.isEmpty() {
		return
	}
	delete(reg.rooms, code)
	log.Info().Str("room", code).Msg("empty room deleted")
}

// Len reports the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
