package viz

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fieldsim/internal/export"
	"github.com/san-kum/fieldsim/internal/field"
	"github.com/san-kum/fieldsim/internal/frame"
)

const (
	// SurfaceID is the mount point of the terminal canvas.
	SurfaceID = "terminal"

	defaultCols     = 80
	defaultRows     = 24
	statsWidth      = 34
	historyCapacity = 120
	gifPath         = "field.gif"
)

// Banner supplies extra lines shown under the canvas.
type Banner interface {
	Lines(now time.Time) []string
}

type Options struct {
	FPS     int
	Theme   string
	Mode    field.Mode
	Reduced bool
	Scale   float64
	Stats   bool
	Banner  Banner
}

type TickMsg time.Time

// hud collects frame stats reported by the field observer.
type hud struct {
	last  field.FrameStats
	links []float64
}

func (h *hud) OnFrame(s field.FrameStats) {
	h.last = s
	h.links = append(h.links, float64(s.Links))
	if len(h.links) > historyCapacity {
		h.links = h.links[1:]
	}
}

// Model is a Bubble Tea host for one field. All field work happens inside
// Update, which Bubble Tea runs on a single goroutine.
type Model struct {
	loop     *frame.Loop
	canvas   *Canvas
	field    *field.Field
	prefs    *field.Prefs
	hud      *hud
	interval time.Duration
	theme    Theme
	banner   Banner

	width, height int
	now           time.Time
	showStats     bool
	paused        bool
	focused       bool
	recording     bool
	frames        []*image.Paletted
	status        string
}

// NewModel mounts a field on a fresh canvas. The canvas takes its real size
// from the first WindowSizeMsg.
func NewModel(cfg field.Config, opts Options) (*Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	prefs := &field.Prefs{Current: opts.Mode, Reduced: opts.Reduced}
	canvas := NewCanvas(defaultCols, defaultRows, opts.Scale)
	loop := frame.NewLoop(canvas.Viewport())
	loop.Mount(SurfaceID, canvas)

	f, err := field.Initialize(loop, SurfaceID, cfg, prefs)
	if err != nil {
		return nil, err
	}
	h := &hud{}
	f.AddObserver(h)

	return &Model{
		loop:      loop,
		canvas:    canvas,
		field:     f,
		prefs:     prefs,
		hud:       h,
		interval:  time.Second / time.Duration(opts.FPS),
		theme:     GetTheme(opts.Theme),
		banner:    opts.Banner,
		width:     defaultCols,
		height:    defaultRows,
		now:       time.Now(),
		showStats: opts.Stats,
		focused:   true,
	}, nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and drives the frame loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case tea.FocusMsg:
		m.focused = true
		m.syncVisibility()
	case tea.BlurMsg:
		m.focused = false
		m.syncVisibility()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.field.Stop()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			m.syncVisibility()
		case "m":
			m.status = "mode " + string(m.prefs.CycleMode())
		case "r":
			m.field.Reseed(m.canvas.Viewport())
		case "t":
			m.theme = NextTheme(m.theme)
		case "s":
			m.showStats = !m.showStats
			m.layout()
		case "g":
			m.toggleRecording()
		}
	case TickMsg:
		m.now = time.Time(msg)
		if m.loop.Tick(m.now) > 0 && m.recording {
			m.frames = append(m.frames, m.canvas.Frame(4, 8))
		}
		return m, m.tick()
	}
	return m, nil
}

// layout fits the canvas to the terminal and resizes the field's viewport.
func (m *Model) layout() {
	cols, rows := m.width-2, m.height-2
	if m.showStats {
		cols -= statsWidth
	}
	if m.banner != nil {
		rows -= len(m.banner.Lines(m.now)) + 1
	}
	m.canvas.Resize(cols, rows)
	m.loop.Resize(m.canvas.Viewport())
}

func (m *Model) syncVisibility() {
	m.loop.SetVisible(m.focused && !m.paused)
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = m.frames[:0]
		m.status = "recording"
		return
	}
	m.recording = false
	if err := export.SaveGIF(gifPath, m.frames, 2); err != nil {
		m.status = err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), gifPath)
	}
	m.frames = nil
}

func (m *Model) state() string {
	switch {
	case m.field == nil:
		return "NO SURFACE"
	case m.paused:
		return "PAUSED"
	case !m.focused:
		return "HIDDEN"
	case !m.field.Scheduled():
		return "STATIC"
	case m.recording:
		return "RECORDING"
	}
	return "RUNNING"
}

// View renders the canvas, the optional stats panel and the banner.
func (m *Model) View() string {
	canvasView := lipgloss.NewStyle().Padding(0, 1).Render(m.canvas.Render(m.theme))
	view := canvasView
	if m.showStats {
		view = lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.statsView())
	}
	if m.banner != nil {
		view = lipgloss.JoinVertical(lipgloss.Center, view, m.bannerView())
	}
	return view
}

func (m *Model) statsView() string {
	label := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(11)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)
	header := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).MarginBottom(1)

	var s strings.Builder
	s.WriteString(header.Render("PARTICLE FIELD") + "\n")
	row := func(k, v string) {
		s.WriteString(label.Render(k) + value.Render(v) + "\n")
	}
	row("State", m.state())
	row("Mode", string(m.prefs.Mode()))
	row("Viewport", m.field.Viewport().String())
	row("Particles", fmt.Sprintf("%d", len(m.field.Particles())))
	row("Links", fmt.Sprintf("%d", m.hud.last.Links))
	row("Frames", fmt.Sprintf("%d", m.field.Frames()))
	row("Seeds", fmt.Sprintf("%d", m.field.Seeds()))
	row("Theme", m.theme.Name)

	if len(m.hud.links) > 1 {
		chart := asciigraph.Plot(m.hud.links, asciigraph.Height(4), asciigraph.Width(20), asciigraph.Caption("links"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(chart) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Warning).Render(m.status) + "\n")
	}
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).MarginTop(1).Render(
		"SP:Pause M:Mode R:Reseed\nT:Theme S:Stats G:GIF Q:Quit"))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Border).
		Padding(0, 2).
		Width(statsWidth - 2).
		Render(s.String())
}

func (m *Model) bannerView() string {
	lines := m.banner.Lines(m.now)
	if len(lines) == 0 {
		return ""
	}
	title := lipgloss.NewStyle().Foreground(m.theme.Text).Bold(true).Render(lines[0])
	rest := lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(lines[1:], "\n"))
	return lipgloss.JoinVertical(lipgloss.Center, title, rest)
}

// Field exposes the mounted field, nil when the surface was missing.
func (m *Model) Field() *field.Field { return m.field }

func (m *Model) Canvas() *Canvas { return m.canvas }

// Frame rasterises the canvas into a two-colour image with dots of dotW×dotH
// pixels.
func (c *Canvas) Frame(dotW, dotH int) *image.Paletted {
	imgW, imgH := c.Width*2*dotW, c.Height*4*dotH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern == 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					baseX := (col*2 + dx) * dotW
					baseY := (row*4 + dy) * dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+px, baseY+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}

// Run starts the program in the alternate screen with focus reporting so a
// backgrounded terminal pauses the field.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
