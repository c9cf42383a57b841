package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client. Each mirrors one store
// operation; unknown ids degrade to no-ops server-side, so a stale
// client never errors the session.
const (
	wsMsgSelect           = "select"
	wsMsgToggleHidden     = "toggle_hidden"
	wsMsgToggleExpanded   = "toggle_expanded"
	wsMsgShowAllHidden    = "show_all_hidden"
	wsMsgDeleteSnippet    = "delete_snippet"
	wsMsgDeleteCommentary = "delete_commentary"
	wsMsgEditField        = "edit_field"
	wsMsgAddReference     = "add_reference"
	wsMsgRegenerate       = "regenerate"
)

// WebSocket message types to client.
const (
	wsMsgState = "state"
	wsMsgAdded = "added"
	wsMsgError = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsClient serializes writes to one connection. Broadcasts from the
// store's notify callback run concurrently with reply writes from the
// read loop, and gorilla/websocket forbids concurrent writers.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("ws marshal: %v", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(wsMessage{Type: msgType, Data: raw}); err != nil {
		log.Printf("ws write: %v", err)
	}
}

// wsCardMsg addresses a card, optionally on an explicit sample.
type wsCardMsg struct {
	Sample string `json:"sample,omitempty"` // defaults to the selected sample
	Card   string `json:"card"`
}

// wsEditMsg is the payload for "edit_field".
type wsEditMsg struct {
	Sample string `json:"sample,omitempty"`
	Path   string `json:"path"`
	Value  string `json:"value"`
}

// wsAddedResponse reports the fresh id of a snippet copied from the pool.
type wsAddedResponse struct {
	Sample string `json:"sample"`
	ID     string `json:"id"`
}

// wsStateResponse is the full view state pushed after every operation
// and on asynchronous transitions.
type wsStateResponse struct {
	Selected     string     `json:"selected"`
	Regenerating bool       `json:"regenerating"`
	Highlight    bool       `json:"highlight"`
	HiddenCount  int        `json:"hidden_count"`
	Layout       layoutJSON `json:"layout"`
}

func (s *Server) stateResponse() wsStateResponse {
	resp := wsStateResponse{
		Selected:     s.store.SelectedID(),
		Regenerating: s.store.IsRegenerating(),
		Highlight:    s.store.HighlightMetrics(),
		HiddenCount:  s.store.HiddenCount(),
	}
	if sample, ok := s.store.Selected(); ok {
		resp.Layout = layoutFor(&sample, s.store.HiddenIDs())
	}
	return resp
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	client := &wsClient{conn: conn}
	s.connMu.Lock()
	s.conns[client] = true
	s.connMu.Unlock()
	defer func() {
		s.connMu.Lock()
		delete(s.conns, client)
		s.connMu.Unlock()
	}()

	// Initial state so the client can render without a round trip.
	client.send(wsMsgState, s.stateResponse())

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			client.send(wsMsgError, map[string]string{"message": "invalid message format"})
			continue
		}

		if err := s.dispatchWS(client, msg); err != nil {
			client.send(wsMsgError, map[string]string{"message": err.Error()})
			continue
		}
		client.send(wsMsgState, s.stateResponse())
	}
}

func (s *Server) dispatchWS(client *wsClient, msg wsMessage) error {
	switch msg.Type {
	case wsMsgSelect:
		var req wsCardMsg
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errInvalidPayload(msg.Type)
		}
		s.store.SelectSample(req.Card)

	case wsMsgToggleHidden:
		var req wsCardMsg
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errInvalidPayload(msg.Type)
		}
		s.store.ToggleHidden(req.Card)

	case wsMsgToggleExpanded:
		var req wsCardMsg
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errInvalidPayload(msg.Type)
		}
		s.store.ToggleExpanded(req.Card)

	case wsMsgShowAllHidden:
		s.store.ShowAllHidden()

	case wsMsgDeleteSnippet:
		var req wsCardMsg
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errInvalidPayload(msg.Type)
		}
		s.store.DeleteSnippet(s.targetSample(req.Sample), req.Card)

	case wsMsgDeleteCommentary:
		var req wsCardMsg
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errInvalidPayload(msg.Type)
		}
		s.store.DeleteCommentary(s.targetSample(req.Sample), req.Card)

	case wsMsgEditField:
		var req wsEditMsg
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errInvalidPayload(msg.Type)
		}
		s.store.EditField(s.targetSample(req.Sample), req.Path, req.Value)

	case wsMsgAddReference:
		var req wsCardMsg
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return errInvalidPayload(msg.Type)
		}
		target := s.targetSample(req.Sample)
		if id, ok := s.store.AddReferenceFromPool(target, req.Card); ok {
			client.send(wsMsgAdded, wsAddedResponse{Sample: target, ID: id})
		}

	case wsMsgRegenerate:
		var req wsCardMsg
		if msg.Data != nil {
			if err := json.Unmarshal(msg.Data, &req); err != nil {
				return errInvalidPayload(msg.Type)
			}
		}
		s.store.RegenerateAnswer(s.targetSample(req.Sample))

	default:
		return errUnknownType(msg.Type)
	}
	return nil
}

// targetSample resolves an optional explicit sample id to the selected one.
func (s *Server) targetSample(id string) string {
	if id != "" {
		return id
	}
	return s.store.SelectedID()
}

type wsError string

func (e wsError) Error() string { return string(e) }

func errInvalidPayload(msgType string) error { return wsError("invalid " + msgType + " data") }
func errUnknownType(msgType string) error    { return wsError("unknown message type: " + msgType) }

