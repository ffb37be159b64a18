package field

// Counter is a surface that only counts draw calls.
type Counter struct {
	Clears  int
	Fades   int
	Circles int
	Glows   int
	Lines   int
}

func (c *Counter) Clear()                           { c.Clears++ }
func (c *Counter) Fade(float64)                     { c.Fades++ }
func (c *Counter) Circle(_, _, _ float64, _ Color)  { c.Circles++ }
func (c *Counter) Glow(_, _, _ float64, _ Color)    { c.Glows++ }
func (c *Counter) Line(_, _, _, _ float64, _ Color) { c.Lines++ }

// Draws is the total number of particle and link draw calls.
func (c *Counter) Draws() int { return c.Circles + c.Glows + c.Lines }
