package misskey

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// Channel identifiers used when subscribing. They double as the `id` field
// Misskey echoes back on every channel event, which is how incoming events
// are routed to handlers.
const (
	channelMain = "main"
	channelHome = "home"
)

// NoteHandler receives one delivered note. Handlers run on their own
// goroutine; a panic inside a handler is recovered and logged without
// terminating the subscription.
type NoteHandler func(note *Note, channel string)

// Stream is a Misskey streaming API connection subscribed to the `main`
// (mention) and `homeTimeline` channels.
type Stream struct {
	conn      *websocket.Conn
	onMention NoteHandler
	onHome    NoteHandler
}

type streamMessage struct {
	Type string `json:"type"`
	Body struct {
		ID   string          `json:"id"`
		Type string          `json:"type"`
		Body json.RawMessage `json:"body"`
	} `json:"body"`
}

type connectMessage struct {
	Type string `json:"type"`
	Body struct {
		Channel string `json:"channel"`
		ID      string `json:"id"`
	} `json:"body"`
}

// Dial opens the streaming connection and subscribes both channels.
// onMention receives `mention` events from the main channel, onHome receives
// `note` events from the home timeline.
func Dial(origin, token string, onMention, onHome NoteHandler) (*Stream, error) {
	endpoint, err := streamURL(origin, token)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial streaming endpoint: %w", err)
	}

	s := &Stream{conn: conn, onMention: onMention, onHome: onHome}

	if err := s.subscribe("main", channelMain); err != nil {
		conn.Close()
		return nil, err
	}
	if err := s.subscribe("homeTimeline", channelHome); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

func (s *Stream) subscribe(channel, id string) error {
	msg := connectMessage{Type: "connect"}
	msg.Body.Channel = channel
	msg.Body.ID = id
	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to subscribe channel %s: %w", channel, err)
	}
	return nil
}

// streamURL converts the service origin into the websocket endpoint.
func streamURL(origin, token string) (string, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("invalid origin: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("invalid origin scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/streaming"
	u.RawQuery = url.Values{"i": {token}}.Encode()
	return u.String(), nil
}

// Listen reads channel events until the connection fails and dispatches each
// note to its handler on a fresh goroutine. It only returns on a read error.
func (s *Stream) Listen() error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("stream read failed: %w", err)
		}

		var msg streamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Ignoring malformed stream message: %v", err)
			continue
		}
		if msg.Type != "channel" {
			continue
		}

		switch {
		case msg.Body.ID == channelMain && msg.Body.Type == "mention":
			s.dispatch(s.onMention, msg.Body.Body, "MAIN")
		case msg.Body.ID == channelHome && msg.Body.Type == "note":
			s.dispatch(s.onHome, msg.Body.Body, "HOME")
		}
	}
}

func (s *Stream) dispatch(handler NoteHandler, raw json.RawMessage, channel string) {
	if handler == nil {
		return
	}

	var note Note
	if err := json.Unmarshal(raw, &note); err != nil {
		log.Printf("[%s] Ignoring malformed note: %v", channel, err)
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[%s] Recovered from handler panic: %v", channel, r)
			}
		}()
		handler(&note, channel)
	}()
}

// Close terminates the streaming connection.
func (s *Stream) Close() error {
	return s.conn.Close()
}
