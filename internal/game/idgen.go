package game

import "math/rand/v2"

const (
	roomCodeLength   = 7
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// newRoomCode draws a case-sensitive alphanumeric code. The code space is
// large enough that collisions are negligible, but the registry still
// retries on the off chance.
func newRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.IntN(len(roomCodeAlphabet))]
	}
	return string(code)
}
