package tilescene

// DefaultCameraDepth is the z position of the scene camera. It sits above
// every tile depth used by the predefined profiles.
const DefaultCameraDepth = 10

// Camera is an orthographic 2D camera covering one viewport.
type Camera struct {
	// Position is the camera center in world space.
	Position [3]float32

	// Width and Height are the visible world extent.
	Width, Height float32
}

// NewCamera returns a camera centered on a width x height viewport whose
// lower-left (UpwardY) or upper-left (DownwardY) corner is the world origin.
func NewCamera(width, height float32) Camera {
	return Camera{
		Position: [3]float32{width * 0.5, height * 0.5, DefaultCameraDepth},
		Width:    width,
		Height:   height,
	}
}

// Origin returns the world coordinate of the viewport corner nearest the
// origin: Position minus half the visible extent.
func (c Camera) Origin() (x, y float32) {
	return c.Position[0] - c.Width*0.5, c.Position[1] - c.Height*0.5
}

// Pan returns the camera moved by (dx, dy) world units.
func (c Camera) Pan(dx, dy float32) Camera {
	c.Position[0] += dx
	c.Position[1] += dy
	return c
}
