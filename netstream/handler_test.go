// SPDX-License-Identifier: EPL-2.0

package netstream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestNewHandler_RejectsNonOpusRate(t *testing.T) {
	t.Parallel()

	b, err := NewBroadcast(44100, 2, 1024)
	require.NoError(t, err)

	_, err = NewHandler(b)
	require.ErrorIs(t, err, ErrUnsupportedOpusRate)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	b, err := NewBroadcast(48000, 1, 1024)
	require.NoError(t, err)

	h, err := NewHandler(b)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/stream", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandler_ClosedBroadcast(t *testing.T) {
	t.Parallel()

	b, err := NewBroadcast(48000, 1, 1024)
	require.NoError(t, err)

	h, err := NewHandler(b)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusGone, w.Code)
}

func TestHandler_StreamsOpusFrames(t *testing.T) {
	t.Parallel()

	b, err := NewBroadcast(48000, 1, 8192)
	require.NoError(t, err)

	h, err := NewHandler(b)
	require.NoError(t, err)

	server := httptest.NewServer(h)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	// Wait for the handler goroutine to attach its subscriber, then
	// feed it two frames worth of audio at 48kHz mono.
	require.Eventually(t, func() bool { return b.Subscribers() > 0 },
		5*time.Second, time.Millisecond)
	_, err = b.WriteSamples(make([]float32, 2*960))
	require.NoError(t, err)

	msgType, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, msgType)
	require.NotEmpty(t, frame)
	require.LessOrEqual(t, len(frame), maxOpusPacket)
}
