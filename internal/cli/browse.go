package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/archmap/archmap/pkg/config"
	"github.com/archmap/archmap/pkg/generator"
	"github.com/archmap/archmap/pkg/plantuml"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for interactive diagram viewing.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		configPath string
		sources    []string
		external   string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a generated diagram interactively and print it",
		Long: `Pick a generated diagram interactively and print it.

The browse command runs the generation pipeline in memory, lists the
resulting diagrams in an interactive picker, and prints the selected
diagram's PlantUML text to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if len(sources) > 0 {
				cfg.Sources.Roots = sources
			}
			if cmd.Flags().Changed("external-service") {
				cfg.Diagram.ExternalService = external
			}
			return c.runBrowse(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default archmap.toml if present)")
	cmd.Flags().StringArrayVarP(&sources, "source", "s", nil, "metadata source directory (repeatable)")
	cmd.Flags().StringVar(&external, "external-service", "", "display name for calls leaving the system")

	return cmd
}

// runBrowse generates diagrams in memory and opens the picker.
func (c *CLI) runBrowse(ctx context.Context, cfg *config.Config) error {
	if len(cfg.Sources.Roots) == 0 {
		return fmt.Errorf("no source roots: pass --source or set sources.roots in %s", config.DefaultPath)
	}

	gen, err := c.newGenerator(ctx, cfg, false, true)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Generating diagrams...")
	spinner.Start()
	result, err := gen.Run(ctx, generator.Options{
		SourceRoots:     cfg.Sources.Roots,
		ExternalService: cfg.Diagram.ExternalService,
	})
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if len(result.Diagrams) == 0 {
		printWarning("No project metadata found under %s", strings.Join(cfg.Sources.Roots, ", "))
		return nil
	}

	p := tea.NewProgram(NewDiagramListModel(result.Diagrams))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(DiagramListModel)
	if !ok || fm.Selected == "" {
		printDetail("No selection made")
		return nil
	}

	fmt.Print(result.Diagrams[fm.Selected])
	return nil
}

// =============================================================================
// DiagramListModel - Interactive diagram selection
// =============================================================================

// diagramEntry is one row in the diagram picker.
type diagramEntry struct {
	Key    string
	Flavor string
}

// DiagramListModel is the bubbletea model for interactive diagram selection.
type DiagramListModel struct {
	Entries  []diagramEntry
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewDiagramListModel creates a picker over the given diagrams, ordered by key.
func NewDiagramListModel(diagrams map[string]string) DiagramListModel {
	var keys []string
	for key := range diagrams {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	entries := make([]diagramEntry, len(keys))
	for i, k := range keys {
		entries[i] = diagramEntry{Key: k, Flavor: diagramFlavor(k)}
	}
	return DiagramListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m DiagramListModel) Init() tea.Cmd {
	return nil
}

func (m DiagramListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Entries[m.Cursor].Key
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DiagramListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Diagram"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-36s %s", cursor, e.Key, listDimStyle.Render(e.Flavor))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// diagramFlavor derives the display flavor from an output key.
func diagramFlavor(key string) string {
	switch key {
	case plantuml.KeyAllModules:
		return plantuml.TypeModules
	case plantuml.KeyAllComponents:
		return plantuml.TypeComponents
	case plantuml.KeySystems:
		return plantuml.TypeSystems
	case plantuml.KeyServices:
		return plantuml.TypeServices
	}
	name, _ := plantuml.SplitKey(key)
	if i := strings.LastIndex(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return ""
}
