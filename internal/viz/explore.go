package viz

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/mechdyn/internal/dynamics"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/models"
	"github.com/san-kum/mechdyn/internal/state"
)

const (
	screenMenu = iota
	screenPose
)

// coordRow is one adjustable chart coordinate in the pose screen.
type coordRow struct {
	joint *mechanism.Joint
	label string
	// index into the velocity vector; nudges move along this chart axis.
	index int
}

// Explorer is the interactive pose browser: pick a model, walk its
// coordinates, and watch kinematic and dynamic quantities respond. All
// quantities are computed on demand from the posed state; nothing is
// integrated.
type Explorer struct {
	reg    *models.Registry
	names  []string
	cursor int
	status string

	screen   int
	selected string
	mech     *mechanism.Mechanism
	st       *state.MechanismState
	rows     []coordRow
	sel      int
	step     float64
	rng      *rand.Rand
	renderer *PoseRenderer
	showHelp bool

	width, height int
}

func NewExplorer(reg *models.Registry) Explorer {
	return Explorer{
		reg:      reg,
		names:    reg.List(),
		step:     0.1,
		rng:      rand.New(rand.NewSource(1)),
		renderer: NewPoseRenderer(46, 18),
		width:    80,
		height:   24,
	}
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if e.screen == screenMenu {
			return e.menuKey(msg)
		}
		return e.poseKey(msg)
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
		cw := (e.width - 38) / 2
		if cw < 24 {
			cw = 24
		}
		ch := e.height - 4
		if ch < 10 {
			ch = 10
		}
		e.renderer.Resize(cw, ch)
	}
	return e, nil
}

func (e Explorer) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.names)-1 {
			e.cursor++
		}
	case "enter", " ":
		e.open(e.names[e.cursor])
	}
	return e, nil
}

func (e *Explorer) open(name string) {
	m, err := e.reg.Get(name)
	if err != nil {
		e.status = err.Error()
		return
	}
	e.selected = name
	e.mech = m
	e.st = state.New(m)
	e.rows = coordRows(e.st)
	e.sel = 0
	e.status = ""
	e.screen = screenPose
}

func coordRows(st *state.MechanismState) []coordRow {
	var rows []coordRow
	for _, j := range st.Mechanism().TreeJoints() {
		if j.NV() == 0 {
			continue
		}
		lo, hi := st.VelocityRange(j)
		for k := 0; k < hi-lo; k++ {
			label := j.Name()
			if j.NV() > 1 {
				label = fmt.Sprintf("%s[%d]", j.Name(), k)
			}
			rows = append(rows, coordRow{joint: j, label: label, index: lo + k})
		}
	}
	return rows
}

func (e Explorer) poseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "esc":
		e.screen = screenMenu
	case "up", "k":
		if e.sel > 0 {
			e.sel--
		}
	case "down", "j":
		if e.sel < len(e.rows)-1 {
			e.sel++
		}
	case "left", "h":
		e.nudge(-e.step)
	case "right", "l":
		e.nudge(e.step)
	case "+", "=":
		e.step *= 2
	case "-", "_":
		if e.step > 1e-4 {
			e.step /= 2
		}
	case "r":
		e.st.Zero()
	case "n":
		e.st.RandConfiguration(e.rng)
	case "?":
		e.showHelp = !e.showHelp
	}
	return e, nil
}

// nudge moves the selected coordinate along its chart axis, which keeps
// quaternion joints on the unit sphere.
func (e *Explorer) nudge(delta float64) {
	if len(e.rows) == 0 {
		return
	}
	phi := make([]float64, e.st.NV())
	phi[e.rows[e.sel].index] = delta
	q0 := append([]float64(nil), e.st.Configuration()...)
	if err := e.st.GlobalCoordinates(q0, phi); err != nil {
		e.status = err.Error()
	}
}

func (e Explorer) View() string {
	if e.screen == screenMenu {
		return e.viewMenu()
	}
	return e.viewPose()
}

func (e Explorer) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("MECHDYN") + "\n")
	b.WriteString("    " + subtitleStyle.Render("rigid body mechanics workbench") + "\n")
	b.WriteString("    " + subtitleStyle.Render(strings.Repeat("─", 30)) + "\n\n")
	for i, name := range e.names {
		if i == e.cursor {
			b.WriteString("    " + activeStyle.Render("▸ "+fmt.Sprintf("%-16s", name)) + "\n")
		} else {
			b.WriteString("    " + dimStyle.Render("  "+fmt.Sprintf("%-16s", name)) + "\n")
		}
	}
	if e.status != "" {
		b.WriteString("\n    " + labelStyle.Render(e.status) + "\n")
	}
	b.WriteString("\n    " + helpStyle.Render("j/k navigate · enter open · q quit") + "\n")
	return b.String()
}

func (e Explorer) viewPose() string {
	canvasView := canvasStyle.Render(e.renderer.Render(e.st))

	var p strings.Builder
	p.WriteString(titleStyle.Render(strings.ToUpper(e.selected)) + "\n")
	p.WriteString(labelStyle.Render(fmt.Sprintf("nq %d · nv %d · %d bodies", e.st.NQ(), e.st.NV(), e.mech.NBodies())) + "\n\n")

	p.WriteString(labelStyle.Render(fmt.Sprintf("COORDINATES (step %.3g)", e.step)) + "\n")
	if len(e.rows) == 0 {
		p.WriteString(dimStyle.Render("  (none)") + "\n")
	}
	for i, row := range e.rows {
		line := fmt.Sprintf("%-14s %s", row.label, e.rowValue(row))
		if i == e.sel {
			p.WriteString(activeStyle.Render("▸ "+line) + "\n")
		} else {
			p.WriteString(dimStyle.Render("  "+line) + "\n")
		}
	}
	p.WriteString("\n" + labelStyle.Render("QUANTITIES") + "\n")
	p.WriteString(e.quantities())
	p.WriteString("\n" + helpStyle.Render("h/l adjust · +/- step · r zero\nn random · esc models · ? help"))
	if e.showHelp {
		p.WriteString("\n\n" + helpStyle.Render("j/k select coordinate\nh/l move along its chart axis\nquaternion joints stay normalized"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(p.String()))
}

// rowValue formats the coordinate behind a row. Joints on a vector chart
// show the matching configuration entry; quaternion joints show their
// whole segment since chart displacements do not persist.
func (e Explorer) rowValue(row coordRow) string {
	j := row.joint
	q := e.st.JointConfiguration(j)
	if j.NQ() == j.NV() {
		lo, _ := e.st.VelocityRange(j)
		return fmt.Sprintf("%8.3f", q[row.index-lo])
	}
	parts := make([]string, len(q))
	for i, v := range q {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (e Explorer) quantities() string {
	var b strings.Builder
	pe := dynamics.GravitationalPotentialEnergy(e.st)
	b.WriteString(labelStyle.Render("potential ") + valueStyle.Render(fmt.Sprintf("%10.4f J", pe)) + "\n")
	com := dynamics.CenterOfMass(e.st)
	b.WriteString(labelStyle.Render("com       ") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f, %.2f)", com.X, com.Y, com.Z)) + "\n")
	if e.st.NV() > 0 {
		tau := dynamics.DynamicsBias(e.st, nil)
		b.WriteString(labelStyle.Render("hold  |τ| ") + valueStyle.Render(fmt.Sprintf("%10.4f Nm", floats.Norm(tau, 2))) + "\n")
		cond := mat.Cond(dynamics.MassMatrix(e.st), 2)
		b.WriteString(labelStyle.Render("cond H    ") + valueStyle.Render(fmt.Sprintf("%10.4g", cond)) + "\n")
	}
	return b.String()
}

// RunExplorer starts the interactive pose browser.
func RunExplorer(reg *models.Registry) error {
	return tea.NewProgram(NewExplorer(reg), tea.WithAltScreen()).Start()
}
