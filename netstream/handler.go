// SPDX-License-Identifier: EPL-2.0

package netstream

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hraban/opus"
)

// Opus packets never exceed 1275 bytes per frame.
const maxOpusPacket = 1500

// Handler upgrades GET requests to websocket connections and streams
// the broadcast to each as 20ms Opus frames in binary messages. Each
// connection gets its own subscriber ring and encoder state.
type Handler struct {
	b        *Broadcast
	frame    int // samples per channel per packet
	upgrader websocket.Upgrader
}

// NewHandler validates the broadcast rate against Opus (8, 12, 16, 24
// or 48 kHz) and returns the handler.
func NewHandler(b *Broadcast) (*Handler, error) {
	switch b.SampleRate() {
	case 8000, 12000, 16000, 24000, 48000:
	default:
		return nil, ErrUnsupportedOpusRate
	}

	return &Handler{
		b:     b,
		frame: b.SampleRate() / 50, // 20ms
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	enc, err := opus.NewEncoder(h.b.SampleRate(), h.b.Channels(), opus.AppAudio)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	sub, err := h.b.subscribe()
	if err != nil {
		w.WriteHeader(http.StatusGone)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the response.
		h.b.unsubscribe(sub)
		return
	}

	defer func() {
		h.b.unsubscribe(sub)
		conn.Close()
	}()

	pcm16 := make([]int16, h.frame*h.b.Channels())
	packet := make([]byte, maxOpusPacket)

	// Waiting longer than a frame period before padding silence would
	// let the client's jitter buffer run dry.
	wait := 20 * time.Millisecond

	for sub.nextFrame(pcm16, wait) {
		n, err := enc.Encode(pcm16, packet)
		if err != nil {
			return
		}

		if err := conn.WriteMessage(websocket.BinaryMessage, packet[:n]); err != nil {
			return
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
