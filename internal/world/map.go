package world

import (
	"fmt"
	"io"
)

// Map is the voxel map of a world as received from the server.
type Map struct {
	Width  int
	Height int
	Depth  int

	data []byte
}

// NewMap wraps raw VXL data received from the server.
func NewMap(width, height, depth int, data []byte) *Map {
	return &Map{
		Width:  width,
		Height: height,
		Depth:  depth,
		data:   data,
	}
}

// Center returns the middle of the map at ground level.
func (m *Map) Center() Vec3 {
	return Vec3{X: float64(m.Width) / 2, Y: float64(m.Height) / 2, Z: float64(m.Depth) / 2}
}

// Save writes the map in VXL format.
func (m *Map) Save(w io.Writer) error {
	_, err := w.Write(m.data)
	if err != nil {
		return fmt.Errorf("writing map data: %w", err)
	}
	return nil
}
