package netlog

import "errors"

var ErrClosed = errors.New("net log is closed")
