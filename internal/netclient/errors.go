package netclient

import "errors"

var (
	ErrNotConnected     = errors.New("not connected")
	ErrConnectionClosed = errors.New("connection closed")
	ErrMalformedEvent   = errors.New("malformed event")
	ErrInvalidAddress   = errors.New("invalid server address")
)
