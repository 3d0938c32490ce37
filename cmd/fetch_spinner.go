package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/adapters/render/report"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const spinnerBarWidth = 20

type fetchTarget struct {
	slot application.Slot
	code string
}

type fetchStateMsg application.SessionState

type fetchDoneMsg struct {
	err error
}

type fetchSpinnerModel struct {
	spinner spinner.Model
	targets []fetchTarget
	states  map[application.Slot]application.SessionState
	warning lipgloss.Style
	fetch   tea.Cmd
	err     error
	done    bool
}

func newFetchSpinnerModel(targets []fetchTarget, fetch tea.Cmd) fetchSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	states := make(map[application.Slot]application.SessionState, len(targets))
	for _, target := range targets {
		states[target.slot] = application.SessionState{
			Slot:        target.slot,
			CountryCode: target.code,
			Stage:       application.StageConnecting,
			Label:       application.StageConnecting.Label(),
		}
	}

	return fetchSpinnerModel{
		spinner: s,
		targets: targets,
		states:  states,
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		fetch:   fetch,
	}
}

func (m fetchSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m fetchSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case fetchStateMsg:
		state := application.SessionState(msg)
		if current, ok := m.states[state.Slot]; ok && current.CountryCode == state.CountryCode && state.Busy() {
			m.states[state.Slot] = state
		}
		return m, nil
	case fetchDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m fetchSpinnerModel) View() string {
	if m.done {
		return ""
	}

	lines := make([]string, 0, len(m.targets))
	for _, target := range m.targets {
		state := m.states[target.slot]
		label := state.Label
		if state.ColdStartSuspected {
			label = m.warning.Render(label)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %3d%% %s",
			m.spinner.View(),
			target.code,
			report.ProgressBar(float64(state.Progress), spinnerBarWidth),
			state.Progress,
			label,
		))
	}
	return strings.Join(lines, "\n")
}

// runFetchSpinner shows live session state for targets while fetch runs.
func runFetchSpinner(ctx context.Context, output io.Writer, orchestrator *application.Orchestrator, targets []fetchTarget, fetch func(context.Context) error) error {
	fetchCmd := func() tea.Msg {
		return fetchDoneMsg{err: fetch(ctx)}
	}

	p := tea.NewProgram(
		newFetchSpinnerModel(targets, fetchCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	unsubscribe := orchestrator.Subscribe(func(state application.SessionState) {
		p.Send(fetchStateMsg(state))
	})
	defer unsubscribe()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(fetchSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
