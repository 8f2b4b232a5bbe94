package widgets

// Widget renders itself into a width x height cell area.
type Widget interface {
	Render(width, height int) string
}

// Text is a pre-rendered block.
type Text string

func (t Text) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return fitCanvas(string(t), width, height)
}

var (
	colorText    = "#cdd6f4"
	colorMuted   = "#a6adc8"
	colorBorder  = "#585b70"
	colorAccent  = "#89b4fa"
	colorSurface = "#313244"
)
