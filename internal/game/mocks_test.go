package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// fakeSession scripts the wire for pump and handshake tests. Reads are fed
// through a channel; writes are recorded.
type fakeSession struct {
	reads  chan fakeFrame
	writes [][]byte
	closed chan struct{}
}

type fakeFrame struct {
	messageType int
	data        []byte
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		reads:  make(chan fakeFrame, 16),
		closed: make(chan struct{}),
	}
}

func (s *fakeSession) feedText(text string) {
	s.reads <- fakeFrame{messageType: websocket.TextMessage, data: []byte(text)}
}

func (s *fakeSession) Read() (int, []byte, error) {
	select {
	case f := <-s.reads:
		return f.messageType, f.data, nil
	case <-s.closed:
		return 0, nil, websocket.ErrCloseSent
	}
}

func (s *fakeSession) WriteText(data []byte) error   { s.writes = append(s.writes, data); return nil }
func (s *fakeSession) WriteBinary(data []byte) error { s.writes = append(s.writes, data); return nil }
func (s *fakeSession) Ping() error                   { return nil }

func (s *fakeSession) Close(reason string) {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
}

// wireEvent is one decoded frame pulled from a player's outbound queue.
type wireEvent struct {
	tag     string
	payload json.RawMessage
	binary  bool
	data    []byte
}

// drainEvents empties a player's outbound queue and decodes the frames.
func drainEvents(t *testing.T, p *Player) []wireEvent {
	t.Helper()
	var events []wireEvent
	for {
		select {
		case frame, ok := <-p.outbound:
			if !ok {
				return events
			}
			if frame.binary {
				events = append(events, wireEvent{binary: true, data: frame.data})
				continue
			}
			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(frame.data, &raw))
			require.Len(t, raw, 1)
			for tag, payload := range raw {
				events = append(events, wireEvent{tag: tag, payload: payload})
			}
		default:
			return events
		}
	}
}

func eventTags(t *testing.T, p *Player) []string {
	t.Helper()
	events := drainEvents(t, p)
	tags := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.binary {
			tags = append(tags, "<binary>")
			continue
		}
		tags = append(tags, ev.tag)
	}
	return tags
}

// findEvent returns the first drained event with the given tag.
func findEvent(t *testing.T, events []wireEvent, tag string) (wireEvent, bool) {
	t.Helper()
	for _, ev := range events {
		if ev.tag == tag {
			return ev, true
		}
	}
	return wireEvent{}, false
}

// newTestRegistry uses short timers so reaping is observable in tests.
func newTestRegistry() *Registry {
	return NewRegistry(20*time.Millisecond, 50*time.Millisecond)
}

// newTestRoom is a registry-less room for pure state-machine tests.
func newTestRoom() *Room {
	reg := NewRegistry(time.Hour, time.Hour)
	code := reg.CreateRoom()
	room, _ := reg.GetRoom(code)
	return room
}

func admitPlayers(room *Room, names ...string) []*Player {
	players := make([]*Player, 0, len(names))
	for _, name := range names {
		p := NewPlayer(name, newFakeSession())
		room.Admit(p)
		players = append(players, p)
	}
	return players
}
