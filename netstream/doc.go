// SPDX-License-Identifier: EPL-2.0

// Package netstream publishes a live audio feed over websockets.
//
// Broadcast is the fan-out point: an audio.Sink whose producer path
// stays lock-free by giving every subscriber a private ring. Handler
// serves the websocket side, encoding each subscriber's feed as 20ms
// Opus frames.
//
// One ring serves exactly one producer and one consumer, so fan-out
// multiplies rings rather than sharing one; the cost is a buffer per
// subscriber, the payoff is that nobody's backpressure touches anyone
// else.
package netstream
