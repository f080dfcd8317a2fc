package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeHint(t *testing.T) {
	testCases := []struct {
		answer string
		hint   string
	}{
		{"hello world", "_____ _____"},
		{`ab2%^' "def-+`, `___%^' "___-+`},
		{"foo", "___"},
		{"", ""},
		{"a-b c!", "_-_ _!"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.hint, MakeHint(tc.answer), "answer %q", tc.answer)
	}
}

func TestHintMatchesAnswerShape(t *testing.T) {
	answer := "mona lisa's smile, 1503"
	hint := MakeHint(answer)
	require.Equal(t, len([]rune(answer)), len([]rune(hint)))
	for i, c := range []rune(answer) {
		h := []rune(hint)[i]
		if c == ' ' || c == '\'' || c == ',' {
			assert.Equal(t, c, h)
		} else {
			assert.Equal(t, '_', h)
		}
	}
}

func TestParseInboundEvent(t *testing.T) {
	testCases := []struct {
		desc    string
		raw     string
		check   func(t *testing.T, ev InboundEvent)
		wantErr bool
	}{
		{
			desc: "chat message",
			raw:  `{"ChatMessage": "hi there"}`,
			check: func(t *testing.T, ev InboundEvent) {
				require.NotNil(t, ev.ChatMessage)
				assert.Equal(t, "hi there", *ev.ChatMessage)
			},
		},
		{
			desc: "circle",
			raw:  `{"Circle": {"center":[50,50], "radius": 20, "color":[255,0,0,255], "imgx":100, "imgy":200}}`,
			check: func(t *testing.T, ev InboundEvent) {
				require.NotNil(t, ev.Circle)
				assert.Equal(t, [2]int{50, 50}, ev.Circle.Center)
				assert.Equal(t, 20, ev.Circle.Radius)
				assert.Equal(t, [4]uint8{255, 0, 0, 255}, ev.Circle.Color)
				assert.Equal(t, uint32(100), ev.Circle.ImgX)
				assert.Equal(t, uint32(200), ev.Circle.ImgY)
			},
		},
		{
			desc: "new image",
			raw:  `{"NewImage": {"dimensions":[100,200], "answer":"Foo"}}`,
			check: func(t *testing.T, ev InboundEvent) {
				require.NotNil(t, ev.NewImage)
				assert.Equal(t, [2]uint32{100, 200}, ev.NewImage.Dimensions)
				assert.Equal(t, "Foo", ev.NewImage.Answer)
			},
		},
		{
			desc:  "give up",
			raw:   `{"GiveUp": null}`,
			check: func(t *testing.T, ev InboundEvent) { assert.True(t, ev.GiveUp) },
		},
		{
			desc:  "pass",
			raw:   `{"Pass": null}`,
			check: func(t *testing.T, ev InboundEvent) { assert.True(t, ev.Pass) },
		},
		{
			desc: "player name",
			raw:  `{"PlayerName": "Alice"}`,
			check: func(t *testing.T, ev InboundEvent) {
				require.NotNil(t, ev.PlayerName)
				assert.Equal(t, "Alice", *ev.PlayerName)
			},
		},
		{desc: "unknown tag", raw: `{"Teleport": "home"}`, wantErr: true},
		{desc: "two tags", raw: `{"GiveUp": null, "Pass": null}`, wantErr: true},
		{desc: "not an object", raw: `"GiveUp"`, wantErr: true},
		{desc: "garbage", raw: `{{{`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ev, err := ParseInboundEvent([]byte(tc.raw))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, ev)
		})
	}
}

func TestMarshalEventShape(t *testing.T) {
	data, err := marshalEvent("ServerMessage", "Alice joined")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ServerMessage": "Alice joined"}`, string(data))

	circle := Circle{Center: [2]int{1, 2}, Radius: 3, Color: [4]uint8{4, 5, 6, 7}, ImgX: 8, ImgY: 9}
	data, err = marshalEvent("Circle", circle)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Circle": {"center":[1,2],"radius":3,"color":[4,5,6,7],"imgx":8,"imgy":9}}`, string(data))
}

func TestCircleRoundTrip(t *testing.T) {
	in := Circle{Center: [2]int{-3, 12}, Radius: 44, Color: [4]uint8{0, 128, 255, 40}, ImgX: 640, ImgY: 480}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	var out Circle
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "foo", normalizeAnswer("  FOO "))
	assert.Equal(t, "foo bar", normalizeAnswer("Foo Bar"))
}
