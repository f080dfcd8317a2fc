package game

import (
	"time"

	"github.com/gorilla/websocket"
)

// NetworkSession is the slice of a websocket connection the game needs.
// Read reports the gorilla message type alongside the payload so the
// caller can drop stray binary frames.
type NetworkSession interface {
	Read() (messageType int, data []byte, err error)
	WriteText(data []byte) error
	WriteBinary(data []byte) error
	Ping() error
	Close(reason string)
}

type websocketSession struct {
	socket *websocket.Conn
}

func NewWebsocketSession(conn *websocket.Conn, pongWait time.Duration) *websocketSession {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &websocketSession{socket: conn}
}

func (ws *websocketSession) Read() (int, []byte, error) {
	return ws.socket.ReadMessage()
}

func (ws *websocketSession) WriteText(data []byte) error {
	return ws.socket.WriteMessage(websocket.TextMessage, data)
}

func (ws *websocketSession) WriteBinary(data []byte) error {
	return ws.socket.WriteMessage(websocket.BinaryMessage, data)
}

func (ws *websocketSession) Ping() error {
	return ws.socket.WriteMessage(websocket.PingMessage, nil)
}

func (ws *websocketSession) Close(reason string) {
	ws.socket.SetWriteDeadline(time.Now().Add(time.Second * 20))
	ws.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
	ws.socket.Close()
}
