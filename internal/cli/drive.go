package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/simon-code-git/circuitcube"
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Interactive motor control",
	Long: `Start an interactive TUI for driving the cube's motors.

Keyboard shortcuts:
  left/right - Select motor (A, B, C)
  up/down    - Adjust selected motor velocity by 10
  s          - Stop the selected motor
  space      - Stop all motors
  b          - Refresh battery voltage
  q/Esc      - Stop all motors and quit`,
	RunE: runDrive,
}

func init() {
	rootCmd.AddCommand(driveCmd)
}

// Styles
var (
	driveTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	motorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedMotorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("82"))

	driveErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	driveHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type batteryMsg struct {
	volts float64
	err   error
}
type commandDoneMsg struct{ err error }

const velocityStep = 10

type driveModel struct {
	cube *circuitcube.Cube

	selected   circuitcube.Motor
	velocities [3]int
	battery    float64
	err        error
	quitting   bool
}

func runDrive(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	m := driveModel{cube: cube, selected: circuitcube.MotorA}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func (m driveModel) Init() tea.Cmd {
	return m.readBattery()
}

func (m driveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case batteryMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.battery = msg.volts
			m.err = nil
		}
		return m, nil

	case commandDoneMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m driveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		m.cube.Halt(context.Background())
		return m, tea.Quit

	case "left", "h":
		if m.selected > circuitcube.MotorA {
			m.selected--
		}
		return m, nil

	case "right", "l":
		if m.selected < circuitcube.MotorC {
			m.selected++
		}
		return m, nil

	case "up", "k":
		return m.adjustVelocity(velocityStep)

	case "down", "j":
		return m.adjustVelocity(-velocityStep)

	case "s":
		m.velocities[m.selected] = 0
		return m, m.sendVelocity(m.selected, 0)

	case " ":
		m.velocities = [3]int{}
		return m, func() tea.Msg {
			return commandDoneMsg{err: m.cube.Halt(context.Background())}
		}

	case "b":
		return m, m.readBattery()
	}

	return m, nil
}

func (m driveModel) adjustVelocity(delta int) (tea.Model, tea.Cmd) {
	v := m.velocities[m.selected] + delta
	if v > 100 {
		v = 100
	}
	if v < -100 {
		v = -100
	}
	m.velocities[m.selected] = v
	return m, m.sendVelocity(m.selected, v)
}

// sendVelocity issues an open-ended run command; the motor keeps the new
// velocity until the next command.
func (m driveModel) sendVelocity(motor circuitcube.Motor, velocity int) tea.Cmd {
	cube := m.cube
	return func() tea.Msg {
		err := cube.RunMotor(context.Background(), motor, velocity, 0, false)
		return commandDoneMsg{err: err}
	}
}

func (m driveModel) readBattery() tea.Cmd {
	cube := m.cube
	return func() tea.Msg {
		volts, err := cube.Battery(context.Background())
		return batteryMsg{volts: volts, err: err}
	}
}

func (m driveModel) View() string {
	if m.quitting {
		return "Motors stopped.\n"
	}

	s := driveTitleStyle.Render("Circuit Cube Drive") + "\n\n"

	for _, motor := range []circuitcube.Motor{circuitcube.MotorA, circuitcube.MotorB, circuitcube.MotorC} {
		line := fmt.Sprintf("Motor %s: %4d%%", motor, m.velocities[motor])
		if motor == m.selected {
			s += selectedMotorStyle.Render("> "+line) + "\n"
		} else {
			s += motorStyle.Render("  "+line) + "\n"
		}
	}

	s += "\n"
	if m.battery > 0 {
		s += fmt.Sprintf("Battery: %.3f V\n", m.battery)
	}
	if m.err != nil {
		s += driveErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	s += "\n" + driveHelpStyle.Render("←/→ motor · ↑/↓ velocity · s stop · space halt · b battery · q quit") + "\n"
	return s
}
