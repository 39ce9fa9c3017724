package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"
	"github.com/spf13/cobra"

	"github.com/TanTanDev/shrubbery/pkg/config"
	"github.com/TanTanDev/shrubbery/pkg/pipeline"
	"github.com/TanTanDev/shrubbery/pkg/shrub"
	"github.com/TanTanDev/shrubbery/pkg/shrub/transform"
	"github.com/TanTanDev/shrubbery/pkg/voxel"
)

// Amounts applied by the interactive bend keys.
const (
	stepGravity = 1.0
	stepSpin    = math32.Pi / 2
)

// stepCommand creates the interactive step command.
func (c *CLI) stepCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "step",
		Short: "Grow a shrub interactively",
		Long: `Plant a shrub from a preset and drive it from the keyboard:

  n  run one grow step
  g  apply gravity (1.0)
  t  spin a quarter turn
  v  voxelize the current skeleton
  r  replant from the preset
  q  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPreset(path)
			if err != nil {
				return err
			}
			m, err := newStepModel(cmd.Context(), p, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "preset file (.toml, .yaml or .json)")
	return cmd
}

// =============================================================================
// StepModel - Interactive growth
// =============================================================================

// voxelizedMsg carries the result of an asynchronous voxelization.
type voxelizedMsg struct {
	voxels []voxel.Voxel
	err    error
}

// stepModel is the bubbletea model for the step command.
type stepModel struct {
	ctx    context.Context
	preset config.Preset
	logger *log.Logger

	shrub  *shrub.Shrubbery
	trunk  shrub.TrunkResult
	steps  int
	last   shrub.GrowResult
	voxels []voxel.Voxel
	busy   bool
	status string
	err    error
}

func newStepModel(ctx context.Context, p config.Preset, logger *log.Logger) (stepModel, error) {
	if err := p.Validate(); err != nil {
		return stepModel{}, err
	}
	m := stepModel{ctx: ctx, preset: p, logger: logger}
	if err := m.replant(); err != nil {
		return stepModel{}, err
	}
	return m, nil
}

func (m *stepModel) replant() error {
	s, _, trunk, err := pipeline.Plant(m.preset, m.logger)
	if err != nil {
		return err
	}
	m.shrub, m.trunk = s, trunk
	m.steps, m.last, m.voxels = 0, shrub.GrowResult{}, nil
	m.status = fmt.Sprintf("planted: trunk %.1f high", trunk.Height)
	return nil
}

func (m stepModel) Init() tea.Cmd {
	return nil
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case voxelizedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.voxels = msg.voxels
		m.status = fmt.Sprintf("voxelized: %d voxels", len(msg.voxels))
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" || key == "esc" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		m.err = nil
		switch key {
		case "n":
			m.last = m.shrub.Grow()
			m.steps++
			m.status = fmt.Sprintf("grew: +%d branches, %d attractors reached", m.last.Spawned, m.last.Reached)
		case "g":
			transform.Gravity(m.shrub, stepGravity)
			m.status = "applied gravity"
		case "t":
			transform.Spin(m.shrub, stepSpin)
			m.status = "applied spin"
		case "r":
			if err := m.replant(); err != nil {
				m.err = err
			}
		case "v":
			m.busy = true
			m.status = "voxelizing..."
			return m, m.voxelize()
		}
	}
	return m, nil
}

// voxelize runs on a snapshot of the settings; the model ignores mutating
// keys until the result arrives.
func (m stepModel) voxelize() tea.Cmd {
	s, p, ctx := m.shrub, m.preset, m.ctx
	return func() tea.Msg {
		settings, err := p.VoxelSettings()
		if err != nil {
			return voxelizedMsg{err: err}
		}
		voxels, err := voxel.VoxelizeContext(ctx, s, settings)
		if err != nil {
			return voxelizedMsg{err: err}
		}
		return voxelizedMsg{voxels: pipeline.ThinLeaves(p, voxels)}
	}
}

func (m stepModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Shrubbery"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("n grow  g gravity  t spin  v voxelize  r replant  q quit"))
	b.WriteString("\n\n")

	counts := voxel.Count(m.voxels)
	size := m.shrub.BoundingSize()
	rows := [][]string{
		{"steps", fmt.Sprint(m.steps)},
		{"branches", fmt.Sprint(len(m.shrub.Branches()))},
		{"attractors", fmt.Sprint(len(m.shrub.Attractors()))},
		{"trunk height", fmt.Sprintf("%.1f", m.trunk.Height)},
		{"bounds", fmt.Sprintf("%d x %d x %d", size.X, size.Y, size.Z)},
		{"branch voxels", fmt.Sprint(counts[voxel.Branch])},
		{"greenery", fmt.Sprint(counts[voxel.Greenery])},
	}

	labelStyle := lipgloss.NewStyle().Foreground(colorGray)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return labelStyle
			}
			return StyleNumber
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.status != "":
		b.WriteString(styleIconInfo.Render(iconInfo) + " " + StyleDim.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}
