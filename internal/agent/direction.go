package agent

import (
	"fmt"
	"strings"

	"github.com/banshee-data/rangesim/internal/lidar"
)

// Direction is one of the four manual steering directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// offset returns the displacement for one step in screen space (y down).
func (d Direction) offset(step float64) lidar.Vec2 {
	switch d {
	case Up:
		return lidar.Vec2{Y: -step}
	case Down:
		return lidar.Vec2{Y: step}
	case Left:
		return lidar.Vec2{X: -step}
	case Right:
		return lidar.Vec2{X: step}
	}
	return lidar.Vec2{}
}

// ParseDirection accepts up/down/left/right in any case, or the single
// letters U/D/L/R.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// ParseMoves parses a compact move script such as "UULDR". Whitespace and
// commas are ignored.
func ParseMoves(script string) ([]Direction, error) {
	var moves []Direction
	for i, r := range script {
		if r == ' ' || r == ',' || r == '\t' || r == '\n' {
			continue
		}
		d, err := ParseDirection(string(r))
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		moves = append(moves, d)
	}
	return moves, nil
}
