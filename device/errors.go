// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var ErrNoSuchDevice = errors.New("no matching input device")
