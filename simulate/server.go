package simulate

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/dshills/hotkeys/key"
)

// DispatchFunc receives each fabricated remote event.
type DispatchFunc func(ev key.Event)

// wireEvent is the JSON message a remote source sends per stroke.
type wireEvent struct {
	Spec string `json:"spec"`
	Kind string `json:"kind"`
}

// Server accepts websocket connections and forwards the key events they
// carry to a dispatch function. Each text message is one JSON event,
// e.g. {"spec":"ctrl+s","kind":"keydown"}. Malformed messages are logged
// and skipped; the connection stays up.
type Server struct {
	dispatch DispatchFunc
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

// NewServer returns a Server forwarding to dispatch. A nil log falls
// back to a warn-level logger.
func NewServer(dispatch DispatchFunc, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Server{
		dispatch: dispatch,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and reads events until the peer closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"component": "simulate",
			"remote":    r.RemoteAddr,
		}).WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.WithFields(logrus.Fields{
		"component": "simulate",
		"remote":    conn.RemoteAddr().String(),
	})
	log.Debug("remote source connected")
	s.readLoop(conn, log)
	log.Debug("remote source disconnected")
}

// readLoop consumes one connection. It returns when the peer closes or
// the read fails.
func (s *Server) readLoop(conn *websocket.Conn, log *logrus.Entry) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("remote source read failed")
			}
			return
		}

		var we wireEvent
		if err := json.Unmarshal(msg, &we); err != nil {
			log.WithError(err).Warn("malformed remote event")
			continue
		}

		pattern, err := key.Parse(we.Spec)
		if err != nil {
			log.WithField("spec", we.Spec).WithError(err).Warn("malformed remote event")
			continue
		}
		kind := key.KindDown
		if we.Kind != "" {
			kind, err = key.ParseKind(we.Kind)
			if err != nil {
				log.WithField("kind", we.Kind).WithError(err).Warn("malformed remote event")
				continue
			}
		}

		s.dispatch(stamp(pattern, kind))
	}
}
