// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams via jfreymuth/oggvorbis.
package vorbis
