package cli

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeturn"
	"github.com/SeamusWaldron/cubeturn/internal/facelets"
	"github.com/SeamusWaldron/cubeturn/internal/notation"
	"github.com/SeamusWaldron/cubeturn/internal/recorder"
	"github.com/SeamusWaldron/cubeturn/internal/turnlog"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive puzzle in the terminal",
	Long: `Start an interactive TUI showing the puzzle as an unfolded sticker net.

Mouse:
  press a sticker and drag across its face to turn a layer

Keyboard shortcuts:
  r l u d f b m e s  - Turn clockwise (shift for counter-clockwise)
  space              - Scramble
  n                  - New solved puzzle
  q/Esc              - Quit

Every gesture and turn is written to a JSONL turn log.`,
	RunE: runPlay,
}

var playNoLog bool

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playNoLog, "no-log", false, "Do not write a turn log")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerColors follows the classic painted scheme.
var stickerColors = map[facelets.Color]lipgloss.Color{
	facelets.Red:    lipgloss.Color("#dd0000"),
	facelets.Orange: lipgloss.Color("#ff8855"),
	facelets.White:  lipgloss.Color("#ffffff"),
	facelets.Yellow: lipgloss.Color("#dddd00"),
	facelets.Green:  lipgloss.Color("#00dd00"),
	facelets.Blue:   lipgloss.Color("#0000dd"),
	facelets.None:   lipgloss.Color("#333333"),
}

// Net layout in terminal cells.
const (
	netTop    = 2 // title and a blank line
	netLeft   = 0
	cellW     = 4
	cellH     = 2
	faceW     = 3 * cellW
	faceH     = 3 * cellH
	tickEvery = 16 * time.Millisecond
)

// faceSlots places each face in the unfolded net, in face units.
var faceSlots = map[facelets.Face][2]int{
	facelets.U: {1, 0},
	facelets.L: {0, 1},
	facelets.F: {1, 1},
	facelets.R: {2, 1},
	facelets.B: {3, 1},
	facelets.D: {1, 2},
}

// Messages
type tickMsg time.Time

// Model
type playModel struct {
	engine  *cubeturn.Engine
	opts    []cubeturn.Option
	cameras map[facelets.Face]*cubeturn.OrthoCamera
	turnLog *turnlog.Logger
	session *recorder.Session
	rng     *rand.Rand

	// Gesture
	pressed   bool
	pressFace facelets.Face

	// State
	scrambling bool
	moves      []notation.Move
	active string
	angle  float64
	last   time.Time

	// UI
	width    int
	height   int
	err      error
	quitting bool
	logPath  string
}

func newPlayModel(opts []cubeturn.Option, tl *turnlog.Logger, seed int64) *playModel {
	m := &playModel{
		cameras: make(map[facelets.Face]*cubeturn.OrthoCamera),
		turnLog: tl,
		session: recorder.NewSession(),
		rng:     rand.New(rand.NewSource(seed)),
	}
	for _, f := range facelets.Faces {
		m.cameras[f] = cubeturn.FaceCamera(f)
	}
	m.opts = append(opts, cubeturn.WithCamera(m.cameras[facelets.F]), cubeturn.WithTurnLog(tl))
	m.reset()
	return m
}

// reset starts over with a solved puzzle.
func (m *playModel) reset() {
	m.engine = cubeturn.New(m.opts...)
	m.engine.OnUpdate(m.handleUpdate)
	m.pressed = false
	m.moves = nil
	m.active = ""
	m.err = nil
	m.session.Reset()
}

func (m *playModel) handleUpdate(u cubeturn.Update) {
	switch u.Kind {
	case cubeturn.UpdateStart, cubeturn.UpdateProgress:
		m.active = describeTurn(u.Turn)
		m.angle = u.Angle
	case cubeturn.UpdateComplete:
		m.active = ""
		m.angle = 0
		if m.scrambling {
			return
		}
		if mv, ok := notation.FromTurn(u.Turn); ok {
			m.moves = append(m.moves, mv)
		}
		m.session.Move(facelets.FromGrid(m.engine.Grid()).IsSolved())
	case cubeturn.UpdateAbort:
		m.err = u.Err
		m.active = ""
		m.angle = 0
	}
}

func describeTurn(t cubeturn.Turn) string {
	if mv, ok := notation.FromTurn(t); ok {
		return mv.Notation()
	}
	return t.String()
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			if err := m.engine.Tick(now.Sub(m.last).Seconds()); err != nil {
				m.err = err
			}
		}
		m.last = now
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		if m.turnLog != nil {
			m.logPath = m.turnLog.FilePath()
			m.turnLog.Close()
		}
		return m, tea.Quit

	case " ":
		if !m.engine.Busy() {
			m.scrambling = true
			m.err = m.engine.Apply(scramble(m.rng, 20)...)
			m.scrambling = false
			m.moves = nil
			m.session.Scramble()
		}
		return m, nil

	case "n":
		if !m.engine.Busy() {
			m.reset()
		}
		return m, nil
	}

	if len(key) != 1 {
		return m, nil
	}
	mv, err := notation.ParseMove(key)
	if err != nil {
		return m, nil
	}
	if key == strings.ToUpper(key) {
		mv.Turn = notation.CCW
	}
	for _, t := range mv.Turns() {
		if _, err := m.engine.Turn(t); err != nil {
			m.err = err
		}
	}
	return m, nil
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		f, ok := faceAt(msg.X, msg.Y)
		if !ok {
			return
		}
		if m.pressed {
			return
		}
		prev := m.engine.Camera()
		m.engine.SetCamera(m.cameras[f])
		if !m.engine.OnPointerDown(faceNDC(f, msg.X, msg.Y)) {
			m.engine.SetCamera(prev)
			return
		}
		m.pressed = true
		m.pressFace = f

	case tea.MouseActionMotion:
		if !m.pressed {
			return
		}
		if _, err := m.engine.OnPointerMove(faceNDC(m.pressFace, msg.X, msg.Y)); err != nil {
			m.err = err
		}

	case tea.MouseActionRelease:
		if m.pressed {
			m.engine.OnPointerUp()
			m.pressed = false
		}
	}
}

// faceAt returns the face drawn under terminal cell (x, y).
func faceAt(x, y int) (facelets.Face, bool) {
	for f, slot := range faceSlots {
		left := netLeft + slot[0]*faceW
		top := netTop + slot[1]*faceH
		if x >= left && x < left+faceW && y >= top && y < top+faceH {
			return f, true
		}
	}
	return 0, false
}

// faceNDC maps terminal cell (x, y) into the NDC of face f's camera. The
// result may fall outside [-1, 1] while a drag leaves the face.
func faceNDC(f facelets.Face, x, y int) mgl64.Vec2 {
	slot := faceSlots[f]
	left := netLeft + slot[0]*faceW
	top := netTop + slot[1]*faceH
	fx := (float64(x-left) + 0.5) / faceW
	fy := (float64(y-top) + 0.5) / faceH
	return mgl64.Vec2{2*fx - 1, 1 - 2*fy}
}

// scramble returns n random outer-face quarter turns.
func scramble(rng *rand.Rand, n int) []notation.Move {
	faces := []notation.Face{
		notation.FaceR, notation.FaceL, notation.FaceU,
		notation.FaceD, notation.FaceF, notation.FaceB,
	}
	moves := make([]notation.Move, n)
	for i := range moves {
		turn := notation.CW
		if rng.Intn(2) == 0 {
			turn = notation.CCW
		}
		moves[i] = notation.Move{Face: faces[rng.Intn(len(faces))], Turn: turn}
	}
	return moves
}

func (m *playModel) View() string {
	if m.quitting {
		msg := "Goodbye!\n"
		if m.logPath != "" {
			msg += fmt.Sprintf("Log saved to: %s\n", m.logPath)
		}
		return msg
	}

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("cubeturn"))
	b.WriteString("\n\n")

	// Net
	b.WriteString(renderNet(facelets.FromGrid(m.engine.Grid())))
	b.WriteString("\n")

	// Turn status
	if m.active != "" {
		b.WriteString(turnStyle.Render(fmt.Sprintf("Turning %s (%.0f deg)", m.active, mgl64.RadToDeg(m.angle))))
	} else if facelets.FromGrid(m.engine.Grid()).IsSolved() {
		b.WriteString(turnStyle.Render("SOLVED"))
	} else {
		b.WriteString(statusStyle.Render("Ready"))
	}
	if m.engine.InputLocked() {
		b.WriteString(statusStyle.Render("  [input locked]"))
	}
	b.WriteString("\n")

	switch m.session.State() {
	case recorder.StateScrambled:
		b.WriteString(statusStyle.Render("Scrambled, timer starts on the first turn"))
		b.WriteString("\n")
	case recorder.StateSolving, recorder.StateSolved:
		b.WriteString(fmt.Sprintf("Time: %s  (%s, %d turns)\n",
			formatElapsed(m.session.Elapsed()), m.session.State(), m.session.MoveCount()))
	}
	b.WriteString(fmt.Sprintf("Moves: %d\n", len(m.moves)))
	if len(m.moves) > 0 {
		start := 0
		prefix := ""
		if len(m.moves) > 20 {
			start = len(m.moves) - 20
			prefix = "... "
		}
		b.WriteString(prefix + moveStyle.Render(notation.Format(m.moves[start:])))
		b.WriteString("\n")
	}

	// Error
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("drag stickers to turn | r l u d f b m e s: turn (shift: reverse) | space: scramble | n: new | q: quit"))
	b.WriteString("\n")

	return b.String()
}

func formatElapsed(d time.Duration) string {
	d = d.Round(10 * time.Millisecond)
	return fmt.Sprintf("%d:%05.2f", int(d.Minutes()), d.Seconds()-60*float64(int(d.Minutes())))
}

// renderNet draws the net with faceSlots geometry so mouse positions map
// back onto stickers.
func renderNet(n *facelets.Net) string {
	blank := strings.Repeat(" ", faceW)
	var b strings.Builder
	for band := 0; band < 3; band++ {
		for row := 0; row < 3; row++ {
			var line strings.Builder
			for slot := 0; slot < 4; slot++ {
				f, ok := faceInSlot(slot, band)
				if !ok {
					line.WriteString(blank)
					continue
				}
				for col := 0; col < 3; col++ {
					c := n.Facelets[f][row*3+col]
					line.WriteString(lipgloss.NewStyle().
						Background(stickerColors[c]).
						Render(" " + c.String() + strings.Repeat(" ", cellW-2)))
				}
			}
			text := strings.TrimRight(line.String(), " ")
			for i := 0; i < cellH; i++ {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func faceInSlot(x, y int) (facelets.Face, bool) {
	for f, slot := range faceSlots {
		if slot[0] == x && slot[1] == y {
			return f, true
		}
	}
	return 0, false
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var tl *turnlog.Logger
	if !playNoLog {
		tl, err = turnlog.Start(logDir(cfg))
		if err != nil {
			// logging is optional
			fmt.Printf("Warning: could not start turn log: %v\n", err)
		}
	}

	// stderr would corrupt the alternate screen
	var logs io.Writer = io.Discard
	if verbose {
		f, err := os.OpenFile(filepath.Join(logDir(cfg), "cubeturn.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logs = f
		}
	}
	opts := []cubeturn.Option{
		cubeturn.WithConfig(cfg),
		cubeturn.WithLogger(newLogger(logs)),
	}
	model := newPlayModel(opts, tl, time.Now().UnixNano())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if tl != nil {
		if sf, err := recorder.NewStateFile(recorder.StatePath(logDir(cfg))); err == nil {
			if err := sf.SetLastSession(tl.FilePath(), tl.SessionID()); err != nil {
				fmt.Printf("Warning: could not save state: %v\n", err)
			}
		}
	}

	return nil
}
