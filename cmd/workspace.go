package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
	"github.com/kamal-hamza/docchat-cli/internal/core/services"
	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

// workspaceCmd represents the workspace command
var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Launch the interactive Q&A workspace (alias: ws)",
	Long: `Launch a full-screen workspace for chatting with your documents.

The workspace provides:
- A conversation pane with answers and source citations
- A document sidebar with per-document selection scoping
- Upload, delete, and refresh without leaving the session

Keyboard Shortcuts:
  Chat:
    Enter       Send question
    Ctrl+Y      Copy last answer to clipboard
    Tab         Switch to document sidebar

  Documents:
    ↑/k ↓/j     Move up / down
    Space       Toggle document in selection
    u           Upload a file
    d           Delete document (with confirmation)
    r           Refresh listing
    Tab/Esc     Back to chat

  General:
    ?           Show help (sidebar)
    Ctrl+C      Quit`,
	RunE: runWorkspace,
}

func runWorkspace(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	requireLogin()

	// The overlay does the confirming here, not the terminal prompt.
	registryService.SetConfirmer(confirmedConfirmer{})

	m := newWorkspaceModel(ctx)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// A 401 on any in-flight request must surface even when no key is
	// being pressed.
	authService.SetLogoutHook(func() {
		p.Send(sessionExpiredMsg{})
	})

	final, err := p.Run()
	authService.SetLogoutHook(nil)
	if err != nil {
		return fmt.Errorf("error running workspace: %w", err)
	}

	if wm, ok := final.(workspaceModel); ok && wm.expired {
		fmt.Println(ui.FormatError(services.MsgSessionExpired))
	}
	return nil
}

// confirmedConfirmer is used once the workspace overlay has already
// asked the user.
type confirmedConfirmer struct{}

func (confirmedConfirmer) Confirm(string) bool { return true }

// Workspace view modes
type focusArea int

const (
	focusChat focusArea = iota
	focusAssets
	focusUpload
	focusConfirmDelete
	focusHelp
)

// Workspace model
type workspaceModel struct {
	ctx    context.Context
	focus  focusArea
	width  int
	height int
	ready  bool

	input     textinput.Model
	pathInput textinput.Model
	chatView  viewport.Model
	spin      spinner.Model
	help      help.Model
	keys      workspaceKeyMap

	assetCursor  int
	deleteTarget *domain.Asset

	notifGen uint64 // generation the dismiss timer is armed for
	expired  bool
}

// Key bindings
type workspaceKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Upload  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Send    key.Binding
	Copy    key.Binding
	Switch  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k workspaceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Switch, k.Toggle, k.Upload, k.Help, k.Quit}
}

func (k workspaceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Upload, k.Delete, k.Refresh},
		{k.Send, k.Copy, k.Switch, k.Help, k.Quit},
	}
}

var workspaceKeys = workspaceKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle selection"),
	),
	Upload: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "upload file"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy answer"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

func newWorkspaceModel(ctx context.Context) workspaceModel {
	ti := textinput.New()
	ti.Placeholder = "Ask a question about your documents..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	pi := textinput.New()
	pi.Placeholder = "Path to file..."
	pi.CharLimit = 300
	pi.Width = 60

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StylePrimary

	return workspaceModel{
		ctx:       ctx,
		focus:     focusChat,
		input:     ti,
		pathInput: pi,
		chatView:  vp,
		spin:      sp,
		help:      help.New(),
		keys:      workspaceKeys,
	}
}

// Messages

type sessionExpiredMsg struct{}

type refreshDoneMsg struct{ err error }

type sendDoneMsg struct{ outcome services.SendOutcome }

type uploadDoneMsg struct{ outcome services.UploadOutcome }

type deleteDoneMsg struct{ outcome services.DeleteOutcome }

type notifTickMsg struct{ gen uint64 }

type copyDoneMsg struct {
	copied bool
	err    error
}

func (m workspaceModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.refreshAssets())
}

func (m workspaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.chatView.Width = m.chatWidth()
		m.chatView.Height = m.chatHeight()
		m.input.Width = m.chatWidth() - 4
		m.syncChatView(false)
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusChat:
			return m.updateChat(msg)
		case focusAssets:
			return m.updateAssets(msg)
		case focusUpload:
			return m.updateUpload(msg)
		case focusConfirmDelete:
			return m.updateConfirmDelete(msg)
		case focusHelp:
			return m.updateHelp(msg)
		}

	case sessionExpiredMsg:
		m.expired = true
		return m, tea.Quit

	case refreshDoneMsg:
		if msg.err != nil {
			// 401 already raised its notification and is quitting via
			// the logout hook; everything else surfaces here.
			var apiErr *ports.APIError
			if !errors.As(msg.err, &apiErr) || apiErr.StatusCode != 401 {
				notifier.Show("Could not load documents", domain.SeverityError)
			}
		}
		m.clampAssetCursor()
		m.syncChatView(false)
		return m, m.armNotifier()

	case sendDoneMsg:
		m.syncChatView(true)
		return m, m.armNotifier()

	case uploadDoneMsg:
		m.clampAssetCursor()
		return m, m.armNotifier()

	case deleteDoneMsg:
		m.clampAssetCursor()
		return m, m.armNotifier()

	case notifTickMsg:
		// Expired timers lose against a newer notification.
		notifier.DismissIf(msg.gen)
		return m, nil

	case copyDoneMsg:
		switch {
		case !msg.copied:
			notifier.Show("Nothing to copy yet", domain.SeverityInfo)
		case msg.err != nil:
			notifier.Show("Clipboard unavailable", domain.SeverityWarning)
		default:
			notifier.Show("Answer copied to clipboard", domain.SeveritySuccess)
		}
		return m, m.armNotifier()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		// The optimistic user echo lands mid-request; spinner frames
		// keep the conversation pane current while it is in flight.
		m.syncChatView(false)
		return m, cmd
	}

	// Viewport scrolling
	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m workspaceModel) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Switch):
		m.focus = focusAssets
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastAnswer()

	case key.Matches(msg, m.keys.Send):
		question := m.input.Value()
		m.input.SetValue("")
		m.syncChatView(true)
		return m, tea.Batch(m.sendQuestion(question), m.spin.Tick)

	case msg.Type == tea.KeyPgUp:
		m.chatView.ViewUp()
		return m, nil

	case msg.Type == tea.KeyPgDown:
		m.chatView.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m workspaceModel) updateAssets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	assets := registryService.Assets()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Switch), key.Matches(msg, m.keys.Escape):
		m.focus = focusChat
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Up):
		if m.assetCursor > 0 {
			m.assetCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.assetCursor < len(assets)-1 {
			m.assetCursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if len(assets) > 0 {
			selection.Toggle(assets[m.assetCursor].ID)
		}

	case key.Matches(msg, m.keys.Upload):
		m.focus = focusUpload
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		if len(assets) > 0 {
			asset := assets[m.assetCursor]
			m.deleteTarget = &asset
			m.focus = focusConfirmDelete
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.refreshAssets(), m.spin.Tick)

	case key.Matches(msg, m.keys.Help):
		m.focus = focusHelp
	}

	return m, nil
}

func (m workspaceModel) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.focus = focusAssets
		m.pathInput.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		path := m.pathInput.Value()
		m.focus = focusAssets
		m.pathInput.Blur()
		if path == "" {
			return m, nil
		}
		return m, tea.Batch(m.uploadFile(path), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m workspaceModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		asset := m.deleteTarget
		m.deleteTarget = nil
		m.focus = focusAssets
		return m, tea.Batch(m.deleteAsset(asset), m.spin.Tick)

	case key.Matches(msg, m.keys.Cancel):
		m.deleteTarget = nil
		m.focus = focusAssets
	}
	return m, nil
}

func (m workspaceModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.focus = focusAssets
	}
	return m, nil
}

// Commands

func (m workspaceModel) refreshAssets() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: registryService.Refresh(m.ctx)}
	}
}

func (m workspaceModel) sendQuestion(question string) tea.Cmd {
	return func() tea.Msg {
		return sendDoneMsg{outcome: sessionService.Send(m.ctx, question)}
	}
}

func (m workspaceModel) uploadFile(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := loadUploadFile(path)
		if err != nil {
			notifier.Show("Could not read "+path, domain.SeverityError)
			return uploadDoneMsg{outcome: services.UploadOutcome{Status: services.UploadRejected}}
		}
		return uploadDoneMsg{outcome: registryService.Upload(m.ctx, file)}
	}
}

func (m workspaceModel) deleteAsset(asset *domain.Asset) tea.Cmd {
	return func() tea.Msg {
		if asset == nil {
			return nil
		}
		return deleteDoneMsg{outcome: registryService.Delete(m.ctx, asset.ID, asset.Filename)}
	}
}

func (m workspaceModel) copyLastAnswer() tea.Cmd {
	return func() tea.Msg {
		messages := sessionService.Messages()
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].Role == domain.RoleAssistant {
				return copyDoneMsg{copied: true, err: clipboard.WriteAll(messages[i].Text)}
			}
		}
		return copyDoneMsg{}
	}
}

// armNotifier schedules the auto-dismiss tick for the live
// notification. The tick carries the generation it was armed for, so a
// notification shown later survives stale timers.
func (m *workspaceModel) armNotifier() tea.Cmd {
	_, gen, visible := notifier.Current()
	if !visible || gen == m.notifGen {
		return nil
	}
	m.notifGen = gen
	d := time.Duration(appConfig.NotificationSeconds) * time.Second
	return tea.Tick(d, func(time.Time) tea.Msg {
		return notifTickMsg{gen: gen}
	})
}

func (m *workspaceModel) clampAssetCursor() {
	n := len(registryService.Assets())
	if m.assetCursor >= n {
		m.assetCursor = n - 1
	}
	if m.assetCursor < 0 {
		m.assetCursor = 0
	}
}
