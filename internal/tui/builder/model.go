// Package builder implements the full-screen workflow builder: the
// three-step wizard on the left and the live preview on the right.
package builder

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/dmflow/internal/hooks"
	"github.com/mark3labs/dmflow/internal/journal"
	"github.com/mark3labs/dmflow/internal/logger"
	"github.com/mark3labs/dmflow/internal/preview"
	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/mark3labs/dmflow/internal/tui/theme"
	"github.com/mark3labs/dmflow/internal/workflow"
)

// focusArea is the part of the screen receiving key presses.
type focusArea int

const (
	focusContent focusArea = iota // Current wizard step
	focusButtons                  // Back / Next / Go Live
	focusComment                  // Test comment input in the preview
)

// Options configures a builder session.
type Options struct {
	Workflow string            // Journal key of the session
	Mode     trigger.Mode      // Initial trigger mode
	Preview  preview.Options   // Simulator settings
	Recorder journal.Recorder  // Receives every transition; optional
	Snapshot *journal.Snapshot // Resumes a replayed workflow; optional
	Hooks    *hooks.Config     // on_live hooks; optional
	WorkDir  string            // Directory hooks run in
}

// Model is the root BubbleTea model of the builder.
type Model struct {
	ctx      context.Context
	workflow string
	state    workflow.State
	sim      *preview.Simulator
	recorder journal.Recorder
	events   int // Transitions recorded so far
	hooks    *hooks.Config
	workDir  string

	postStep    *PostStep
	triggerStep *TriggerStep
	replyStep   *ReplyStep
	buttons     *ButtonBar
	panel       *PreviewPanel
	summary     *Summary
	toast       Toast

	focus  focusArea
	width  int
	height int
}

// New creates a builder model.
func New(ctx context.Context, opts Options) *Model {
	snap := opts.Snapshot
	if snap == nil {
		snap = journal.NewSnapshot(opts.Workflow, journal.Options{Mode: opts.Mode, Preview: opts.Preview})
	}

	m := &Model{
		ctx:         ctx,
		workflow:    opts.Workflow,
		state:       snap.State,
		sim:         snap.Preview,
		recorder:    opts.Recorder,
		events:      snap.Events,
		hooks:       opts.Hooks,
		workDir:     opts.WorkDir,
		postStep:    NewPostStep(),
		triggerStep: NewTriggerStep(snap.State.Trigger.Mode),
		replyStep:   NewReplyStep(),
		buttons:     NewButtonBar(),
		panel:       NewPreviewPanel(snap.Preview),
		summary:     NewSummary(),
	}

	if m.state.Post != nil {
		m.postStep.Select(m.state.Post.ID)
	}
	m.triggerStep.SetTrigger(m.state.Trigger)
	m.replyStep.SetMessage(m.state.Reply)

	m.postStep.Blur()
	m.triggerStep.Blur()
	m.replyStep.Blur()
	m.refreshButtons()
	return m
}

// Run starts the builder in its own BubbleTea program and blocks until the
// user quits.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("builder failed: %w", err)
	}
	return nil
}

// Init focuses the first step.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.focusStepContent(), m.stepInit())
}

// State returns the workflow under construction.
func (m *Model) State() workflow.State {
	return m.state
}

// Simulator returns the preview simulator.
func (m *Model) Simulator() *preview.Simulator {
	return m.sim
}

// Events returns the number of transitions recorded so far.
func (m *Model) Events() int {
	return m.events
}

// Update handles messages for the builder.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case SubmitMsg:
		if m.state.Step == workflow.LastStep {
			return m, m.goLive()
		}
		return m, m.goNext()

	case PostSelectedMsg:
		post, err := workflow.FindPost(msg.ID)
		if err != nil {
			logger.Warn("Selecting post: %v", err)
			return m, nil
		}
		m.state = m.state.SelectPost(post)
		m.record(journal.SelectPost(post.ID))
		m.refreshButtons()
		return m, nil

	case ReplyEditedMsg:
		cmd := m.replyStep.Update(msg)
		m.syncStep()
		return m, cmd

	case CommentSubmittedMsg:
		m.record(journal.AddComment(msg.Comment))
		return m, nil

	case HookFinishedMsg:
		if msg.Err != nil {
			logger.Warn("on_live hooks: %v", msg.Err)
			return m, nil
		}
		if line := firstLine(msg.Output); line != "" {
			return m, m.toast.Show("Hook: " + line)
		}
		return m, nil

	case toastExpiredMsg:
		m.toast.Update(msg)
		return m, nil
	}

	// Cursor blinks and other component messages
	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.summary.Visible() {
		switch key {
		case "esc", "ctrl+s", "q":
			m.summary.Hide()
			return m, nil
		}
		return m, m.summary.Update(msg)
	}

	switch key {
	case "ctrl+s":
		m.summary.Show(m.state, m.sim)
		return m, nil
	case "esc":
		if m.state.Step == workflow.StepSelectContent {
			return m, tea.Quit
		}
		return m, m.goBack()
	}

	switch m.focus {
	case focusButtons:
		switch key {
		case "tab", "right":
			if !m.buttons.FocusNext() {
				return m, m.focusPreview()
			}
			return m, nil
		case "shift+tab", "left":
			if !m.buttons.FocusPrev() {
				return m, m.focusStepContent()
			}
			return m, nil
		case "enter", "space", " ":
			return m, m.activateButton()
		}
		return m, nil

	case focusComment:
		switch key {
		case "tab":
			return m, m.focusStepContent()
		case "shift+tab":
			return m, m.focusButtons(false)
		}
		return m, m.panel.Update(msg)

	default:
		switch key {
		case "tab":
			return m, m.focusButtons(true)
		case "shift+tab":
			return m, m.focusPreview()
		}
		cmd := m.updateStep(msg)
		m.syncStep()
		return m, cmd
	}
}

// updateFocused forwards non-key messages to the focused component.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	if m.focus == focusComment {
		return m.panel.Update(msg)
	}
	return m.updateStep(msg)
}

func (m *Model) updateStep(msg tea.Msg) tea.Cmd {
	switch m.state.Step {
	case workflow.StepSelectContent:
		return m.postStep.Update(msg)
	case workflow.StepConfigureTrigger:
		return m.triggerStep.Update(msg)
	default:
		return m.replyStep.Update(msg)
	}
}

func (m *Model) stepInit() tea.Cmd {
	switch m.state.Step {
	case workflow.StepSelectContent:
		return m.postStep.Init()
	case workflow.StepConfigureTrigger:
		return m.triggerStep.Init()
	default:
		return m.replyStep.Init()
	}
}

// syncStep copies edits made in the current step into the workflow state.
func (m *Model) syncStep() {
	switch m.state.Step {
	case workflow.StepConfigureTrigger:
		if mode := m.triggerStep.Mode(); mode != m.state.Trigger.Mode {
			m.state = m.state.SetTriggerMode(mode)
			m.record(journal.SetTriggerMode(mode))
		}
		if pattern := m.triggerStep.Pattern(); pattern != m.state.Trigger.Pattern {
			m.state = m.state.SetTriggerPattern(pattern)
			m.record(journal.SetTriggerPattern(pattern))
		}
	case workflow.StepComposeReply:
		if message := m.replyStep.Message(); message != m.state.Reply {
			m.state = m.state.SetReplyMessage(message)
			m.record(journal.SetReply(message))
		}
	}
	m.refreshButtons()
}

// record sends change to the recorder, if any.
func (m *Model) record(change journal.Change) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Record(m.ctx, m.workflow, change); err != nil {
		logger.Error("Recording %s/%s: %v", change.Type, change.Action, err)
		return
	}
	m.events++
}

func (m *Model) activateButton() tea.Cmd {
	btn, ok := m.buttons.FocusedButton()
	if !ok || !btn.Enabled {
		return nil
	}
	switch btn.ID {
	case ButtonBack:
		return m.goBack()
	case ButtonNext:
		return m.goNext()
	case ButtonGoLive:
		return m.goLive()
	}
	return nil
}

func (m *Model) goBack() tea.Cmd {
	if m.state.Step == workflow.StepSelectContent {
		return nil
	}
	m.blurStepContent()
	m.state = m.state.Previous()
	m.record(journal.Previous())
	return tea.Batch(m.focusStepContent(), m.stepInit())
}

func (m *Model) goNext() tea.Cmd {
	if !m.state.CanProceed() {
		return m.toast.Show(m.state.Step.Requirement())
	}
	if m.state.Step == workflow.LastStep {
		return nil
	}
	m.blurStepContent()
	m.state = m.state.Next()
	m.record(journal.Next())
	return tea.Batch(m.focusStepContent(), m.stepInit())
}

func (m *Model) goLive() tea.Cmd {
	if m.state.Live {
		return nil
	}
	if !m.state.CanGoLive() {
		return m.toast.Show(workflow.LastStep.Requirement())
	}
	m.state = m.state.GoLive()
	m.record(journal.GoLive())
	m.refreshButtons()
	logger.Info("Workflow %s is live: %s", m.state.Name(), m.state.Trigger.Describe())
	return tea.Batch(m.toast.Show("🎉 Your automation is now live!"), m.runHooks())
}

// runHooks runs the on_live hooks in the background.
func (m *Model) runHooks() tea.Cmd {
	onLive := m.hooks.OnLive()
	if len(onLive) == 0 {
		return nil
	}
	ctx, workDir := m.ctx, m.workDir
	vars := hooks.VariablesFor(m.state)
	return func() tea.Msg {
		output, err := hooks.ExecuteAll(ctx, onLive, workDir, vars)
		return HookFinishedMsg{Output: output, Err: err}
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (m *Model) refreshButtons() {
	m.buttons.SetButtons(wizardButtons(
		m.state.Step > workflow.StepSelectContent,
		m.state.CanProceed(),
		m.state.Step == workflow.LastStep,
		m.state.CanGoLive(),
		m.state.Live,
	))
}

func (m *Model) blurStepContent() {
	switch m.state.Step {
	case workflow.StepSelectContent:
		m.postStep.Blur()
	case workflow.StepConfigureTrigger:
		m.triggerStep.Blur()
	default:
		m.replyStep.Blur()
	}
}

func (m *Model) focusStepContent() tea.Cmd {
	m.focus = focusContent
	m.buttons.Blur()
	m.panel.Blur()
	m.refreshButtons()
	switch m.state.Step {
	case workflow.StepSelectContent:
		return m.postStep.Focus()
	case workflow.StepConfigureTrigger:
		return m.triggerStep.Focus()
	default:
		return m.replyStep.Focus()
	}
}

// focusButtons moves focus to the button bar. With no enabled button it
// skips ahead to the preview (first) or back to the step (last).
func (m *Model) focusButtons(first bool) tea.Cmd {
	m.blurStepContent()
	m.panel.Blur()
	m.refreshButtons()
	var ok bool
	if first {
		ok = m.buttons.FocusFirst()
	} else {
		ok = m.buttons.FocusLast()
	}
	if ok {
		m.focus = focusButtons
		return nil
	}
	if first {
		return m.focusPreview()
	}
	return m.focusStepContent()
}

func (m *Model) focusPreview() tea.Cmd {
	m.blurStepContent()
	m.buttons.Blur()
	m.focus = focusComment
	return m.panel.Focus()
}

func (m *Model) updateSizes() {
	leftWidth, rightWidth, height := m.layout()
	m.postStep.SetSize(leftWidth-4, height)
	m.triggerStep.SetSize(leftWidth-4, height)
	m.replyStep.SetSize(leftWidth-4, height)
	m.buttons.SetWidth(leftWidth - 4)
	m.panel.SetSize(rightWidth, height)
	m.summary.SetSize(m.width, m.height)
}

// layout splits the screen between wizard and preview.
func (m *Model) layout() (left, right, height int) {
	right = min(max(m.width*2/5, 36), 56)
	left = max(m.width-right-1, 40)
	height = max(m.height-4, 10)
	return left, right, height
}

// View renders the builder.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	var content string
	if m.summary.Visible() {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.summary.View())
	} else {
		content = m.render()
	}

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render draws the header, the two columns and the footer.
func (m *Model) render() string {
	left, _, _ := m.layout()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderWizard(left), " ", m.panel.View(m.state)),
		m.renderFooter(),
	)
}

func (m *Model) renderHeader() string {
	t := theme.Current()
	s := t.S()
	logo := s.HeaderTitle.Render(theme.ApplyGradient("dmflow", t.Primary, t.Tertiary))
	return logo + " " + s.HeaderInfo.Render("Comment → DM automation • "+m.state.Name())
}

func (m *Model) renderWizard(width int) string {
	s := theme.Current().S()
	step := m.state.Step

	var stepView string
	switch step {
	case workflow.StepSelectContent:
		stepView = m.postStep.View()
	case workflow.StepConfigureTrigger:
		stepView = m.triggerStep.View()
	default:
		stepView = m.replyStep.View()
	}

	requirement := ""
	if !m.state.CanProceed() {
		requirement = s.Warning.Render(step.Requirement())
	} else if step == workflow.LastStep && m.state.Live {
		requirement = s.Success.Render("✓ Automation is live")
	}

	style := s.Panel
	if m.focus != focusComment {
		style = s.PanelFocused
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		s.StepTitle.Render(fmt.Sprintf("Step %d of %d: %s", int(step)+1, len(workflow.Steps()), step.Title())),
		s.StepDescription.Render(step.Description()),
		"",
		stepView,
		"",
		m.buttons.Render(),
		requirement,
	))
}

func (m *Model) renderFooter() string {
	s := theme.Current().S()
	hints := renderHintBar("tab", "focus", "ctrl+s", "summary", "esc", "back", "ctrl+c", "quit")
	activity := s.Muted.Render(fmt.Sprintf("%d events recorded", m.events))
	if toast := m.toast.View(); toast != "" {
		return toast + "  " + hints
	}
	return hints + "  " + activity
}
