// SPDX-License-Identifier: EPL-2.0

package netstream

import "errors"

var (
	ErrBroadcastClosed     = errors.New("broadcast closed")
	ErrUnsupportedOpusRate = errors.New("sample rate not supported by opus")
)
