package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

func (m workspaceModel) View() string {
	if !m.ready {
		return "\n  Loading workspace..."
	}

	switch m.focus {
	case focusHelp:
		return m.viewHelp()
	case focusConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewWorkspace()
	}
}

func (m workspaceModel) sidebarWidth() int {
	w := int(float64(m.width) * 0.3)
	if w < 26 {
		w = 26
	}
	return w
}

func (m workspaceModel) chatWidth() int {
	w := m.width - m.sidebarWidth() - 2
	if w < 40 {
		w = 40
	}
	return w
}

func (m workspaceModel) chatHeight() int {
	h := m.height - 9 // header, input, notification, footer
	if h < 6 {
		h = 6
	}
	return h
}

func (m workspaceModel) viewWorkspace() string {
	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	// Conversation pane and sidebar side by side
	chat := m.renderChatPane()
	sidebar := m.renderSidebar()
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chat, "  ", sidebar))
	s.WriteString("\n")

	s.WriteString(m.renderInputLine())
	s.WriteString("\n")
	s.WriteString(m.renderNotificationLine())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m workspaceModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Align(lipgloss.Right)

	assets := registryService.Assets()
	scope := "all documents"
	if n := selection.Len(); n > 0 {
		scope = fmt.Sprintf("%d of %d documents", n, len(assets))
	}

	title := titleStyle.Render("💬 DocChat Workspace")
	stats := statsStyle.Render(fmt.Sprintf("asking across %s", scope))

	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	spacer := m.width - titleWidth - statsWidth
	if spacer < 0 {
		spacer = 0
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacer),
		stats,
	)
}

func (m workspaceModel) renderChatPane() string {
	borderColor := ui.ColorMuted
	if m.focus == focusChat {
		borderColor = ui.ColorPrimary
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(m.chatWidth()).
		Height(m.chatHeight()).
		Render(m.chatView.View())
}

// syncChatView rebuilds the conversation pane content from the session
// history.
func (m *workspaceModel) syncChatView(toBottom bool) {
	width := m.chatWidth() - 2
	if width < 20 {
		width = 20
	}

	userStyle := lipgloss.NewStyle().Foreground(ui.ColorAccent).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault).Width(width)

	var s strings.Builder
	messages := sessionService.Messages()
	if len(messages) == 0 {
		s.WriteString(ui.StyleMuted.Render("Ask a question to get started."))
	}

	for i, msg := range messages {
		if i > 0 {
			s.WriteString("\n")
		}
		switch msg.Role {
		case domain.RoleUser:
			s.WriteString(userStyle.Render("You"))
			s.WriteString("\n")
			s.WriteString(textStyle.Render(msg.Text))
		case domain.RoleAssistant:
			s.WriteString(ui.StylePrimary.Render(ui.IconRobot + " DocChat"))
			s.WriteString("\n")
			s.WriteString(textStyle.Render(msg.Text))
			for _, src := range msg.Sources {
				s.WriteString("\n")
				s.WriteString(ui.StyleMuted.Render("  • " + src.Label()))
			}
		}
		s.WriteString("\n")
	}

	if sessionService.Sending() {
		s.WriteString("\n")
		s.WriteString(m.spin.View())
		s.WriteString(ui.StyleMuted.Render(" Thinking..."))
	}

	m.chatView.SetContent(s.String())
	if toBottom {
		m.chatView.GotoBottom()
	}
}

func (m workspaceModel) renderSidebar() string {
	borderColor := ui.ColorMuted
	if m.focus == focusAssets || m.focus == focusUpload {
		borderColor = ui.ColorPrimary
	}

	width := m.sidebarWidth()
	var s strings.Builder

	s.WriteString(ui.StyleHeader.Render("Documents"))
	s.WriteString("\n\n")

	assets := registryService.Assets()
	if len(assets) == 0 {
		s.WriteString(ui.StyleMuted.Render("No documents yet.\nPress 'u' to upload."))
	}

	for i, a := range assets {
		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)
		if m.focus != focusChat && i == m.assetCursor {
			cursor = ui.StylePrimary.Render("▶ ")
			nameStyle = nameStyle.Bold(true)
		}

		check := "○"
		if selection.Has(a.ID) {
			check = ui.StyleSuccess.Render("●")
		}

		name := a.Filename
		maxName := width - 12
		if maxName < 8 {
			maxName = 8
		}
		if len(name) > maxName {
			name = name[:maxName-3] + "..."
		}

		s.WriteString(fmt.Sprintf("%s%s %s %s\n",
			cursor,
			check,
			ui.AssetIcon(a.Type),
			nameStyle.Render(name),
		))
	}

	if m.focus == focusUpload {
		s.WriteString("\n")
		s.WriteString(ui.StyleInfo.Render("Upload: "))
		s.WriteString(m.pathInput.View())
	} else if registryService.Uploading() {
		s.WriteString("\n")
		s.WriteString(m.spin.View())
		s.WriteString(ui.StyleMuted.Render(" Uploading..."))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Height(m.chatHeight()).
		Render(s.String())
}

func (m workspaceModel) renderInputLine() string {
	borderColor := ui.ColorMuted
	if m.focus == focusChat {
		borderColor = ui.ColorPrimary
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 4).
		Render(m.input.View())
}

func (m workspaceModel) renderNotificationLine() string {
	notif, _, visible := notifier.Current()
	if !visible {
		return " "
	}
	style := ui.SeverityStyle(notif.Severity)
	return style.Render(" " + ui.SeverityIcon(notif.Severity) + " " + notif.Text)
}

func (m workspaceModel) renderFooter() string {
	var hint string
	if m.focus == focusChat {
		hint = "[Enter] Send  [Ctrl+Y] Copy answer  [Tab] Documents  [Ctrl+C] Quit"
	} else {
		hint = "[↑↓/jk] Navigate  [Space] Select  [u] Upload  [d] Delete  [r] Refresh  [Tab] Chat  [?] Help"
	}
	return ui.StyleMuted.Render(" " + hint)
}

func (m workspaceModel) viewConfirmDelete() string {
	if m.deleteTarget == nil {
		return ""
	}

	var s strings.Builder

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(60).
		Align(lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorWarning).
		Bold(true)

	nameStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true)

	promptStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault).
		MarginTop(1)

	content := fmt.Sprintf("%s\n\n%s\n%s\n\n%s",
		titleStyle.Render("⚠️  Delete Document?"),
		nameStyle.Render(m.deleteTarget.Filename),
		ui.StyleMuted.Render(fmt.Sprintf("%s, %s", strings.ToUpper(m.deleteTarget.Type), ui.FormatSize(m.deleteTarget.Size))),
		promptStyle.Render("Press 'y' to confirm, 'n' or ESC to cancel"),
	)

	box := boxStyle.Render(content)

	verticalPadding := (m.height - lipgloss.Height(box)) / 2
	if verticalPadding < 0 {
		verticalPadding = 0
	}
	for i := 0; i < verticalPadding; i++ {
		s.WriteString("\n")
	}

	s.WriteString(lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, box))

	return s.String()
}

func (m workspaceModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorAccent).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ui.ColorSuccess).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ui.ColorDefault)

	s.WriteString(titleStyle.Render("DocChat Workspace - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "Chat",
			keys: []struct{ key, desc string }{
				{"Enter", "Send question"},
				{"Ctrl+Y", "Copy last answer to clipboard"},
				{"PgUp/PgDn", "Scroll conversation"},
			},
		},
		{
			title: "Documents",
			keys: []struct{ key, desc string }{
				{"↑ / k", "Move cursor up"},
				{"↓ / j", "Move cursor down"},
				{"Space", "Toggle document in selection"},
				{"u", "Upload a file"},
				{"d", "Delete document (with confirmation)"},
				{"r", "Refresh listing"},
			},
		},
		{
			title: "General",
			keys: []struct{ key, desc string }{
				{"Tab", "Switch between chat and documents"},
				{"?", "Show this help"},
				{"Ctrl+C", "Quit workspace"},
			},
		},
	}

	for _, section := range sections {
		s.WriteString(sectionStyle.Render(section.title))
		s.WriteString("\n")
		for _, binding := range section.keys {
			s.WriteString("  ")
			s.WriteString(keyStyle.Render(binding.key))
			s.WriteString(descStyle.Render(binding.desc))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to the workspace"))
	s.WriteString("\n")

	return s.String()
}
