package tui

import (
	"context"
	"fmt"
	"time"

	"hungie/api"
	"hungie/chat"
	"hungie/render"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Backend is what the chat view needs from the API client
type Backend interface {
	chat.Searcher
	GetRecipe(ctx context.Context, id string) (*api.Recipe, error)
}

// Rows taken by everything except the message viewport
const chromeHeight = 8

const helpText = "Enter send • Tab quick prompt • Ctrl+N/P pick recipe • Ctrl+O open recipe • Ctrl+Y copy reply • Ctrl+R new chat • Ctrl+C quit"

// replyMsg carries a finished smart-search call back into Update
type replyMsg struct {
	token string
	resp  *api.SmartSearchResponse
	err   error
}

// recipeMsg carries a fetched recipe detail. Like replyMsg it is dropped
// when its token is no longer the pending one.
type recipeMsg struct {
	token  string
	id     string
	recipe *api.Recipe
	err    error
}

type model struct {
	ctx     context.Context
	backend Backend
	window  int
	logger  zerolog.Logger
	now     func() time.Time

	state       chat.State
	promptIndex int
	status      string

	// selected indexes the current suggestions
	selected int
	// recipeToken names the recipe fetch in flight, if any
	recipeToken string

	// detail is the rendered recipe page; empty while chatting
	detail string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	markdown *glamour.TermRenderer

	writeClipboard func(string) error

	width  int
	height int
}

func newModel(ctx context.Context, backend Backend, window int, logger zerolog.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "Ask me anything about cooking... (try: 'quick pasta' or 'substitute for eggs')"
	ti.Prompt = "🍳 "
	ti.CharLimit = 1000
	ti.Width = 76
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))

	m := model{
		ctx:            ctx,
		backend:        backend,
		window:         window,
		logger:         logger,
		now:            time.Now,
		state:          chat.NewState(time.Now()),
		promptIndex:    -1,
		input:          ti,
		viewport:       viewport.New(80, 20),
		spinner:        sp,
		writeClipboard: clipboard.WriteAll,
		width:          80,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.input.Width = max(msg.Width-8, 10)
		m.refresh()

	case replyMsg:
		next, applied := chat.Settle(m.state, msg.token, msg.resp, msg.err, m.now(), m.logger)
		if applied {
			m.state = next
			m.selected = 0
			m.refresh()
		}

	case recipeMsg:
		if msg.token == "" || msg.token != m.recipeToken {
			m.logger.Debug().Str("recipe_id", msg.id).Msg("dropping stale recipe")
			return m, nil
		}
		m.recipeToken = ""
		m.status = ""
		m.openDetail(msg)

	case spinner.TickMsg:
		// Let the spinner stop once nothing is pending
		if !m.state.Awaiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.recipeToken != "" {
			m.recipeToken = ""
			m.status = ""
		}
		if m.detail != "" {
			m.detail = ""
			m.refresh()
		}
		return m, nil

	case "enter":
		if m.detail != "" {
			return m, nil
		}
		next, req, ok := m.state.Submit(m.input.Value(), m.window, m.now())
		if !ok {
			return m, nil
		}
		m.state = next
		m.input.Reset()
		m.promptIndex = -1
		m.status = ""
		m.refresh()
		return m, tea.Batch(m.search(req), m.spinner.Tick)

	case "tab":
		// Quick prompts are offered only before the first message
		if m.state.Len() == 1 && !m.state.Awaiting() && m.detail == "" {
			m.promptIndex = (m.promptIndex + 1) % len(chat.QuickPrompts)
			m.input.SetValue(chat.QuickPrompts[m.promptIndex])
			m.input.CursorEnd()
			m.state = m.state.WithInput(m.input.Value())
		}
		return m, nil

	case "ctrl+r":
		m.state = chat.NewState(m.now())
		m.input.Reset()
		m.detail = ""
		m.recipeToken = ""
		m.selected = 0
		m.promptIndex = -1
		m.status = "Started a new conversation"
		m.refresh()
		return m, nil

	case "ctrl+y":
		m.status = m.copyLastReply()
		return m, nil

	case "ctrl+n", "ctrl+p":
		suggestions := m.state.Suggestions()
		if len(suggestions) == 0 || m.detail != "" {
			return m, nil
		}
		step := 1
		if msg.String() == "ctrl+p" {
			step = len(suggestions) - 1
		}
		m.selected = (m.selected + step) % len(suggestions)
		m.status = fmt.Sprintf("Selected %d. %s", m.selected+1, suggestions[m.selected].Name)
		m.refresh()
		return m, nil

	case "ctrl+o":
		suggestions := m.state.Suggestions()
		if len(suggestions) == 0 {
			m.status = "No recipe suggestions yet"
			return m, nil
		}
		if m.selected >= len(suggestions) {
			m.selected = 0
		}
		card := suggestions[m.selected]
		m.status = fmt.Sprintf("Loading %s...", card.Name)
		cmd := m.fetchRecipe(card.ID.String())
		return m, cmd

	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.detail != "" {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.WithInput(m.input.Value())
	return m, cmd
}

// search runs the smart-search call off the update loop
func (m model) search(req chat.Request) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		resp, err := backend.SmartSearch(ctx, req.Message, req.Context)
		return replyMsg{token: req.Token, resp: resp, err: err}
	}
}

// fetchRecipe starts a detail lookup and makes it the pending one
func (m *model) fetchRecipe(id string) tea.Cmd {
	token := uuid.NewString()
	m.recipeToken = token
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		recipe, err := backend.GetRecipe(ctx, id)
		return recipeMsg{token: token, id: id, recipe: recipe, err: err}
	}
}

func (m *model) openDetail(msg recipeMsg) {
	if msg.err != nil || msg.recipe == nil || msg.recipe.Name == "" {
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("recipe_id", msg.id).Msg("failed to load recipe")
		}
		m.detail = render.NotFound
	} else {
		m.detail = m.renderMarkdown(render.RecipeMarkdown(msg.recipe))
	}
	m.viewport.SetContent(m.detail)
	m.viewport.GotoTop()
}

func (m model) renderMarkdown(md string) string {
	if m.markdown == nil {
		return md
	}
	out, err := m.markdown.Render(md)
	if err != nil {
		m.logger.Debug().Err(err).Msg("markdown render failed")
		return md
	}
	return out
}

// copyLastReply copies the newest assistant message and reports the outcome
func (m model) copyLastReply() string {
	messages := m.state.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Origin != chat.OriginAssistant {
			continue
		}
		text := render.Plain(render.Interpret(messages[i]))
		if err := m.writeClipboard(text); err != nil {
			m.logger.Warn().Err(err).Msg("clipboard write failed")
			return "Could not copy to clipboard"
		}
		return "Copied Hungie's last reply"
	}
	return "Nothing to copy yet"
}

// refresh redraws the message log into the viewport
func (m *model) refresh() {
	if m.detail != "" {
		return
	}
	selected := -1
	if len(m.state.Suggestions()) > 0 {
		selected = m.selected
	}
	m.viewport.SetContent(renderLog(m.state.Messages(), m.width, selected))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	title := titleStyle.Render("Hungie - Your Personal Chef Assistant 🍴")

	var typing string
	switch {
	case m.detail != "":
		typing = mutedStyle.Render("Esc to return to the chat • ↑↓ to scroll")
	case m.state.Awaiting():
		typing = m.spinner.View() + " Hungie is cooking up a response..."
	}

	input := inputStyle.Render(m.input.View())
	status := mutedStyle.Render(m.status)
	help := mutedStyle.Render(helpText)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		m.viewport.View(),
		typing,
		input,
		status,
		help,
	)
}

// StartTUI initializes and starts the chat interface
func StartTUI(ctx context.Context, backend Backend, window int, logger zerolog.Logger) error {
	m := newModel(ctx, backend, window, logger)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("markdown renderer unavailable, showing raw recipes")
	} else {
		m.markdown = renderer
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(model); ok {
		logger.Info().Int("messages", fm.state.Len()).Msg("chat closed")
	}
	return err
}
