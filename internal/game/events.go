package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Circle is one drawing primitive. The coordinate fields mirror the shapes
// produced by the evolution worker on the client, so the server treats the
// whole thing as pass-through data.
type Circle struct {
	Center [2]int   `json:"center"`
	Radius int      `json:"radius"`
	Color  [4]uint8 `json:"color"`
	ImgX   uint32   `json:"imgx"`
	ImgY   uint32   `json:"imgy"`
}

type NewImageRequest struct {
	Dimensions [2]uint32 `json:"dimensions"`
	Answer     string    `json:"answer"`
}

// InboundEvent is the decoded form of a client text frame. The wire format
// is a single-key tagged union, e.g. {"ChatMessage": "hi"} or {"GiveUp": null},
// so exactly one of the fields below is populated per event.
type InboundEvent struct {
	ChatMessage *string
	Circle      *Circle
	NewImage    *NewImageRequest
	GiveUp      bool
	Pass        bool
	PlayerName  *string
}

func ParseInboundEvent(data []byte) (InboundEvent, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return InboundEvent{}, fmt.Errorf("decoding event: %w", err)
	}
	if len(raw) != 1 {
		return InboundEvent{}, fmt.Errorf("expected exactly one event tag, got %d", len(raw))
	}

	var ev InboundEvent
	for tag, payload := range raw {
		switch tag {
		case "ChatMessage":
			ev.ChatMessage = new(string)
			return ev, json.Unmarshal(payload, ev.ChatMessage)
		case "Circle":
			ev.Circle = new(Circle)
			return ev, json.Unmarshal(payload, ev.Circle)
		case "NewImage":
			ev.NewImage = new(NewImageRequest)
			return ev, json.Unmarshal(payload, ev.NewImage)
		case "GiveUp":
			ev.GiveUp = true
			return ev, nil
		case "Pass":
			ev.Pass = true
			return ev, nil
		case "PlayerName":
			ev.PlayerName = new(string)
			return ev, json.Unmarshal(payload, ev.PlayerName)
		default:
			return ev, fmt.Errorf("unknown event tag %q", tag)
		}
	}
	return ev, nil
}

// Outbound event payload shapes. Each is wrapped under its tag by
// marshalEvent, producing the same single-key union as the inbound side.

type newImageNotice struct {
	Dimensions [2]uint32 `json:"dimensions"`
	AnswerHint string    `json:"answer_hint"`
}

type chatLine struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type privateInfo struct {
	PrivateID string     `json:"private_id"`
	Info      PlayerInfo `json:"info"`
}

// marshalEvent serializes an outbound event exactly once; the resulting
// bytes are shared between every sink they are enqueued on.
func marshalEvent(tag string, payload any) ([]byte, error) {
	return json.Marshal(map[string]any{tag: payload})
}

// normalizeAnswer makes guesses and stored answers comparable regardless
// of case or surrounding whitespace.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MakeHint masks every alphanumeric rune of the answer while keeping
// spaces and punctuation, so guessers see the word shape only.
func MakeHint(answer string) string {
	hint := []rune(answer)
	for i, c := range hint {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			hint[i] = '_'
		}
	}
	return string(hint)
}
