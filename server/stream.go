package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/tilescene"
)

const writeWait = 10 * time.Second

// Stream message types.
const (
	MessageScene  = "scene"
	MessageEntity = "entity"
	MessageDone   = "done"
	MessageError  = "error"
)

// message is the envelope of every websocket frame.
type message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type doneJSON struct {
	ID       string `json:"id"`
	Entities int    `json:"entities"`
}

// handleStream upgrades to a websocket and sends the current scene as one
// scene header, one entity message per placement in projection order, and a
// done message. The connection is then closed normally.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		tilescene.Logger().Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	scene, _, err := s.Scene()
	if err != nil {
		_ = writeMessage(conn, message{Type: MessageError, Data: apiError{Error: err.Error()}})
		closeNormal(conn)
		return
	}

	if err := s.stream(conn, scene); err != nil {
		tilescene.Logger().Warn("websocket stream aborted",
			slog.String("id", scene.ID),
			slog.Any("error", err))
		return
	}
	closeNormal(conn)
}

func (s *Server) stream(conn *websocket.Conn, scene *tilescene.Scene) error {
	if err := writeMessage(conn, message{Type: MessageScene, Data: sceneHeader(scene)}); err != nil {
		return err
	}
	for _, pl := range scene.Placements {
		if err := writeMessage(conn, message{Type: MessageEntity, Data: newEntityJSON(pl)}); err != nil {
			return err
		}
	}
	done := doneJSON{ID: scene.ID, Entities: len(scene.Placements)}
	if err := writeMessage(conn, message{Type: MessageDone, Data: done}); err != nil {
		return err
	}
	tilescene.Logger().Debug("scene streamed",
		slog.String("id", scene.ID),
		slog.Int("entities", done.Entities))
	return nil
}

func writeMessage(conn *websocket.Conn, msg message) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func closeNormal(conn *websocket.Conn) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
