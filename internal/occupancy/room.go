package occupancy

// RoomWallThickness is the border thickness of NewRoom maps.
const RoomWallThickness = 5

// NewRoom builds a walled room with two pillars, used when no map image is
// supplied. The pillars sit at one and two thirds of the width, each a
// tenth of the smaller dimension wide and spanning the middle third of the
// height.
func NewRoom(width, height int) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	t := RoomWallThickness
	g.FillRect(0, 0, width, t)
	g.FillRect(0, height-t, width, height)
	g.FillRect(0, 0, t, height)
	g.FillRect(width-t, 0, width, height)

	side := min(width, height) / 10
	y0, y1 := height/3, 2*height/3
	for _, cx := range []int{width / 3, 2 * width / 3} {
		g.FillRect(cx-side/2, y0, cx-side/2+side, y1)
	}
	return g, nil
}
