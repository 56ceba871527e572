package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

type FrontendType int

const (
	FrontendTypeTerminal FrontendType = iota
	FrontendTypeHeadless
)

func (ft *FrontendType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "terminal":
		*ft = FrontendTypeTerminal
	case "headless":
		*ft = FrontendTypeHeadless
	default:
		return fmt.Errorf("unknown frontend type: %s", text)
	}
	return nil
}

type FrontendConfig struct {
	Type FrontendType `json:"type"`
	// MaxFrames stops a headless client after this many frames. Zero runs
	// until interrupted.
	MaxFrames int `json:"max_frames"`
}

func (f *FrontendConfig) validate() error {
	el := errors.NewErrorList()

	if f.MaxFrames < 0 {
		el.Add(fmt.Errorf("max_frames must not be negative"))
	}
	if f.MaxFrames > 0 && f.Type != FrontendTypeHeadless {
		el.Add(fmt.Errorf("max_frames only applies to the headless frontend"))
	}

	return el.Err()
}
