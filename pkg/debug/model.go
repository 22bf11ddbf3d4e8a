// Package debug implements an interactive terminal debugger over a
// *cpu.Engine as a bubbletea program: a hex page table with the program
// counter highlighted, and a register/flag panel.
package debug

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/moregh/cpu8/pkg/cpu"
	"github.com/moregh/cpu8/pkg/inst"
)

const rowWidth = 16

var panelStyle = lipgloss.NewStyle().Padding(0, 1)
var highlightStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

// model is the bubbletea model wrapping an Engine. It never mutates engine
// semantics beyond calling Tick/Reset — it is purely a host-side viewer.
type model struct {
	engine *cpu.Engine
	prevPC uint16
	err    error
	quit   bool
}

// New returns a debugger model over engine.
func New(engine *cpu.Engine) model {
	return model{engine: engine}
}

// Run starts the interactive debugger. It blocks until the user quits.
func Run(engine *cpu.Engine) error {
	_, err := tea.NewProgram(New(engine)).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.engine.Reg.PC
			if err := m.engine.Tick(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "r":
			m.engine.Reset()
			m.prevPC = 0
		}
	}
	return m, nil
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			panelStyle.Render(m.pageTable()),
			panelStyle.Render(m.status()),
		),
		"",
		panelStyle.Render(m.currentInstruction()),
	)
}

// renderRow renders one 16-byte row of memory starting at a multiple of
// rowWidth, with the byte at the current PC highlighted.
func (m model) renderRow(start uint16) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04x | ", start)
	for i := 0; i < rowWidth; i++ {
		addr := start + uint16(i)
		cell := fmt.Sprintf("%02x", m.engine.Mem.Read(addr))
		if addr == m.engine.Reg.PC {
			cell = highlightStyle.Render(cell)
		}
		b.WriteString(cell)
		b.WriteByte(' ')
	}
	return b.String()
}

// pageTable renders the rows around address 0 and around the current PC,
// so the view stays useful once execution has moved away from the start
// of memory.
func (m model) pageTable() string {
	pcRow := (m.engine.Reg.PC / rowWidth) * rowWidth
	rows := []string{"addr | " + strings.TrimSpace(strings.Repeat(" xx  ", rowWidth))}
	seen := map[uint16]bool{}
	for _, start := range []uint16{0, rowWidth, 2 * rowWidth, pcRow, pcRow + rowWidth} {
		if seen[start] {
			continue
		}
		seen[start] = true
		rows = append(rows, m.renderRow(start))
	}
	return strings.Join(rows, "\n")
}

func (m model) status() string {
	r, f := m.engine.Reg, m.engine.Flags
	s := fmt.Sprintf(
		"PC: %04x (was %04x)\n A: %02x\n X: %02x\n Y: %02x\n\nZ O H N\n%s %s %s %s\nticks: %d",
		r.PC, m.prevPC, r.A, r.X, r.Y,
		flagCell(f.Z), flagCell(f.O), flagCell(f.H), flagCell(f.N),
		m.engine.Ticks,
	)
	if m.err != nil {
		s += fmt.Sprintf("\n\nerror: %v", m.err)
	}
	return s
}

func flagCell(set bool) string {
	if set {
		return "/"
	}
	return " "
}

func (m model) currentInstruction() string {
	op := inst.OpCode(m.engine.Mem.Read(m.engine.Reg.PC))
	return spew.Sdump(struct {
		Mnemonic string
		OpCode   inst.OpCode
	}{inst.Mnemonic(op), op})
}
