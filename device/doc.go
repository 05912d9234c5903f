// SPDX-License-Identifier: EPL-2.0

// Package device connects rings to real audio hardware: portaudio
// input callbacks produce into a ring (Capture), and an oto player
// consumes from one (Playback).
//
// The capture callback runs on the audio thread and follows its rules:
// no locks, no blocking, no allocation on the steady path. A full ring
// drops the remainder of the callback's buffer and counts one overrun.
package device
