package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/story-commands/pkg/chat"
	"github.com/jwebster45206/story-commands/pkg/dice"
	"github.com/jwebster45206/story-commands/pkg/session"
	"github.com/muesli/reflow/wordwrap"
)

const (
	PlaceHolderText = "Type a command, an action, or /help..."

	maxRecentEvents = 6
)

// entry kinds in the chat log
const (
	entryUser   = "user"
	entryRoll   = "roll"
	entryReply  = "reply"
	entryQueued = "queued"
	entryError  = "error"
	entryHelp   = "help"
)

type logEntry struct {
	kind    string
	content string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	streamClient *http.Client
	session      *session.Session
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	log          []logEntry
	lastRoll     string
	recentEvents []string
	status       string

	// Character selection state
	showCharacterModal bool
	characters         []CharacterSummary
	selectedCharacter  int // len(characters) means "no character"
	loadingCharacters  bool

	// Event stream
	events       chan SSEEvent
	cancelStream context.CancelFunc

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type commandResponseMsg struct {
	input    string
	response *chat.CommandResponse
	err      error
}

type rollResponseMsg struct {
	response *chat.RollResponse
	err      error
}

type sessionMsg struct {
	session *session.Session
	err     error
}

type charactersLoadedMsg struct {
	characters []CharacterSummary
	err        error
}

type sessionCreatedMsg struct {
	session *session.Session
	err     error
}

type sseEventMsg SSEEvent

type streamClosedMsg struct {
	err error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	rollStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

const helpText = `Commands:
• /roll 2d6+1 [label], /r 1d20 - Roll dice
• /d4 /d6 /d8 /d10 /d12 /d20 /d100 - Quick roll
• /sheet, /character, /stats - Character sheet
• /inventory, /inv, /items, /bag - Inventory
• /copy - Copy the last roll
• /help - Show this help
• Ctrl+C - Quit

Anything else is a turn for the game engine:
• "go north", "walk to the village" - Movement
• "search the chest", "open the door" - Action
• Everything else - Story`

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = chat.MaxMessageLength
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config: cfg,
		client: client,
		// The event stream stays open, so it cannot share the request timeout.
		streamClient:       &http.Client{},
		textarea:           ta,
		chatViewport:       chatVp,
		metaViewport:       metaVp,
		showCharacterModal: true,
		loadingCharacters:  true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showCharacterModal {
		return m.loadCharacters()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	if m.showCharacterModal {
		return m.updateCharacterModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.status = ""

			if handled, model, cmd := m.handleLocalCommand(input); handled {
				return model, cmd
			}

			m.log = append(m.log, logEntry{kind: entryUser, content: input})
			m.loading = true
			m.progressTick = 0
			m.writeChatContent()

			return m, tea.Batch(m.sendCommand(input), progressTick())
		}

	case commandResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.log = append(m.log, logEntry{kind: entryError, content: msg.err.Error()})
		} else {
			m.log = append(m.log, commandEntries(msg.response)...)
			if msg.response.Formatted != "" {
				m.lastRoll = msg.response.Formatted
			}
		}
		m.writeChatContent()
		return m, m.refreshSession()

	case rollResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.log = append(m.log, logEntry{kind: entryError, content: msg.err.Error()})
		} else {
			m.log = append(m.log, logEntry{kind: entryRoll, content: msg.response.Formatted})
			m.lastRoll = msg.response.Formatted
		}
		m.writeChatContent()
		return m, m.refreshSession()

	case sessionMsg:
		if msg.err == nil && msg.session != nil {
			m.session = msg.session
			m.writeMetadata()
		}

	case sseEventMsg:
		m.recentEvents = append(m.recentEvents, describeEvent(SSEEvent(msg)))
		if len(m.recentEvents) > maxRecentEvents {
			m.recentEvents = m.recentEvents[len(m.recentEvents)-maxRecentEvents:]
		}
		m.writeMetadata()
		return m, waitForEvent(m.events)

	case streamClosedMsg:
		text := "Event stream closed"
		if msg.err != nil {
			text = fmt.Sprintf("Event stream closed: %v", msg.err)
		}
		m.recentEvents = append(m.recentEvents, text)
		m.writeMetadata()

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// handleLocalCommand runs the slash commands the console answers itself.
// Everything else goes to the API.
func (m ConsoleUI) handleLocalCommand(input string) (bool, tea.Model, tea.Cmd) {
	cmd := strings.ToLower(input)

	switch cmd {
	case "/help":
		m.log = append(m.log, logEntry{kind: entryHelp, content: helpText})
		m.writeChatContent()
		return true, m, nil

	case "/copy":
		if m.lastRoll == "" {
			m.status = "Nothing to copy yet"
		} else if err := clipboard.WriteAll(m.lastRoll); err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", err)
		} else {
			m.status = "Last roll copied to clipboard"
		}
		m.writeMetadata()
		return true, m, nil
	}

	if sides, ok := parseQuickDie(cmd); ok {
		m.log = append(m.log, logEntry{kind: entryUser, content: input})
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return true, m, tea.Batch(m.quickRoll(sides), progressTick())
	}

	return false, m, nil
}

// parseQuickDie recognises "/d20" style input for the supported quick dice.
func parseQuickDie(input string) (int, bool) {
	if !strings.HasPrefix(input, "/d") {
		return 0, false
	}
	sides, err := strconv.Atoi(strings.TrimPrefix(input, "/d"))
	if err != nil || !dice.IsQuickDie(sides) {
		return 0, false
	}
	return sides, true
}

// commandEntries turns an API response into chat log lines.
func commandEntries(resp *chat.CommandResponse) []logEntry {
	var entries []logEntry
	switch {
	case resp.Formatted != "":
		entries = append(entries, logEntry{kind: entryRoll, content: resp.Formatted})
	case resp.Message != "":
		entries = append(entries, logEntry{kind: entryReply, content: resp.Message})
	}
	if !resp.Handled {
		entries = append(entries, logEntry{kind: entryQueued, content: describeQueued(resp)})
	}
	return entries
}

func describeQueued(resp *chat.CommandResponse) string {
	cmd := resp.Command
	var detail string
	switch {
	case cmd.Movement != nil && cmd.Movement.Direction != "":
		detail = "heading " + cmd.Movement.Direction
	case cmd.Movement != nil && cmd.Movement.Target != "":
		detail = "toward " + cmd.Movement.Target
	case cmd.Action != nil && cmd.Action.Target != "":
		detail = cmd.Action.Verb + " → " + cmd.Action.Target
	case cmd.Action != nil:
		detail = cmd.Action.Verb
	}

	text := fmt.Sprintf("[%s]", cmd.Kind)
	if detail != "" {
		text += " " + detail
	}
	if resp.RequestID != "" {
		text += " · sent to the game engine"
	} else {
		text += " · no game engine connected"
	}
	return text
}

func describeEvent(ev SSEEvent) string {
	switch ev.Type {
	case "dice.rolled":
		if notation, ok := ev.Data["notation"].(string); ok {
			if total, ok := ev.Data["total"].(float64); ok {
				return fmt.Sprintf("rolled %s = %d", notation, int(total))
			}
		}
	case "command.interpreted":
		if kind, ok := ev.Data["kind"].(string); ok {
			return "interpreted " + kind
		}
	case "turn.queued":
		if kind, ok := ev.Data["kind"].(string); ok {
			return "queued " + kind
		}
	}
	return ev.Type
}

// writeChatContent rebuilds the chat log for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // left(3) + right(3) padding
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("STORY COMMANDS") + "\n\n")
	content.WriteString("Roll dice, check your sheet, or describe what you do.\n")
	content.WriteString(promptStyle.Render("Type /help for the command list.") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, e := range m.log {
		switch e.kind {
		case entryUser:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(e.content, chatWidth-6) + "\n\n")
		case entryRoll:
			content.WriteString(rollStyle.Render(e.content) + "\n\n")
		case entryReply:
			content.WriteString(formatReply(e.content, chatWidth) + "\n\n")
		case entryQueued:
			content.WriteString(promptStyle.Render(wordwrap.String(e.content, chatWidth)) + "\n\n")
		case entryHelp:
			content.WriteString(titleStyle.Render("Help:") + "\n" + e.content + "\n\n")
		case entryError:
			content.WriteString(errorStyle.Render("Error: "+wordwrap.String(e.content, chatWidth-7)) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

// formatReply wraps a locally answered reply, highlighting "Label:" prefixes.
func formatReply(text string, width int) string {
	wrapped := wordwrap.String(text, width)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, ":"); idx > 0 && idx <= 20 && len(strings.Fields(line[:idx])) <= 2 {
			lines[i] = speakerStyle.Render(line[:idx+1]) + replyStyle.Render(line[idx+1:])
			continue
		}
		lines[i] = replyStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")

	if m.session != nil {
		content.WriteString("Session:\n")
		content.WriteString(m.session.ID.String()[:8] + "...\n\n")

		content.WriteString("Character:\n")
		if name := m.session.CharacterName(); name != "" {
			content.WriteString(name + "\n\n")
		} else {
			content.WriteString("None\n\n")
		}

		if m.session.Location != "" {
			content.WriteString("Location:\n" + m.session.Location + "\n\n")
		}

		content.WriteString(fmt.Sprintf("Rolls: %d\nTurns: %d\n\n", len(m.session.Rolls), len(m.session.Turns)))
	}

	content.WriteString("Last roll:\n")
	if m.lastRoll != "" {
		content.WriteString(rollStyle.Render(m.lastRoll) + "\n\n")
	} else {
		content.WriteString("None yet\n\n")
	}

	if len(m.recentEvents) > 0 {
		content.WriteString("Events:\n")
		for _, e := range m.recentEvents {
			content.WriteString("• " + e + "\n")
		}
		content.WriteString("\n")
	}

	if m.status != "" {
		content.WriteString(loadingStyle.Render(m.status) + "\n\n")
	}

	content.WriteString("Keys:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy roll\n")

	m.metaViewport.SetContent(content.String())
}

func (m *ConsoleUI) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6
	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) sendCommand(input string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendCommand(m.client, m.config.APIBaseURL, m.session.ID, input)
		return commandResponseMsg{input: input, response: resp, err: err}
	}
}

func (m ConsoleUI) quickRoll(sides int) tea.Cmd {
	return func() tea.Msg {
		resp, err := quickRoll(m.client, m.config.APIBaseURL, m.session.ID, sides)
		return rollResponseMsg{response: resp, err: err}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		s, err := getSession(m.client, m.config.APIBaseURL, m.session.ID)
		return sessionMsg{s, err}
	}
}

func (m ConsoleUI) loadCharacters() tea.Cmd {
	return func() tea.Msg {
		list, err := listCharacters(m.client, m.config.APIBaseURL)
		return charactersLoadedMsg{list, err}
	}
}

func (m ConsoleUI) createSession(characterID string) tea.Cmd {
	return func() tea.Msg {
		s, err := createSession(m.client, m.config.APIBaseURL, characterID)
		return sessionCreatedMsg{s, err}
	}
}

// startStream opens the session's event stream in the background.
func (m ConsoleUI) startStream(ctx context.Context) tea.Cmd {
	events := m.events
	client := m.streamClient
	baseURL := m.config.APIBaseURL
	sessionID := m.session.ID
	return func() tea.Msg {
		err := listenToSSE(ctx, client, baseURL, sessionID, events)
		if ctx.Err() != nil {
			return nil
		}
		return streamClosedMsg{err: err}
	}
}

func waitForEvent(events <-chan SSEEvent) tea.Cmd {
	return func() tea.Msg {
		return sseEventMsg(<-events)
	}
}

func (m ConsoleUI) updateCharacterModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case charactersLoadedMsg:
		m.loadingCharacters = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.characters = msg.characters
		}

	case sessionCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session
		m.showCharacterModal = false
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.writeMetadata()
		m.textarea.Focus()

		ctx, cancel := context.WithCancel(context.Background())
		m.cancelStream = cancel
		m.events = make(chan SSEEvent, 16)
		return m, tea.Batch(textarea.Blink, m.startStream(ctx), waitForEvent(m.events))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			if m.loadingCharacters {
				return m, tea.Quit
			}
			m.showQuitModal = true
			return m, nil
		}
		if m.loadingCharacters || m.loading || m.err != nil {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyUp:
			if m.selectedCharacter > 0 {
				m.selectedCharacter--
			}
		case tea.KeyDown:
			if m.selectedCharacter < len(m.characters) {
				m.selectedCharacter++
			}
		case tea.KeyEnter:
			var characterID string
			if m.selectedCharacter < len(m.characters) {
				characterID = m.characters[m.selectedCharacter].ID
			}
			m.loading = true
			return m, m.createSession(characterID)
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m.quit()
		default:
			switch msg.String() {
			case "y", "Y":
				return m.quit()
			case "n", "N":
				m.showQuitModal = false
				if m.showCharacterModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) quit() (tea.Model, tea.Cmd) {
	if m.cancelStream != nil {
		m.cancelStream()
	}
	return m, tea.Quit
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave this session?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderCharacterModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.loadingCharacters:
		content.WriteString(modalTitleStyle.Render("Loading Characters..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Please wait while we fetch available characters..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(wordwrap.String(m.err.Error(), 50)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	case m.loading:
		content.WriteString(modalTitleStyle.Render("Creating Session..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Setting up your session..."))
	default:
		content.WriteString(modalTitleStyle.Render("Select a Character"))
		content.WriteString("\n\n")

		options := make([]string, 0, len(m.characters)+1)
		for _, c := range m.characters {
			options = append(options, c.DisplayName())
		}
		options = append(options, "No character")

		for i, opt := range options {
			if i == m.selectedCharacter {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + opt))
			} else {
				content.WriteString(modalItemStyle.Render("  " + opt))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if m.showCharacterModal {
		return m.renderCharacterModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
