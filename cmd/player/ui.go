package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/scenario-player/internal/config"
	"github.com/jwebster45206/scenario-player/internal/logger"
	istorage "github.com/jwebster45206/scenario-player/internal/storage"
	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/effect"
	"github.com/jwebster45206/scenario-player/pkg/interpreter"
	"github.com/jwebster45206/scenario-player/pkg/state"
	"github.com/jwebster45206/scenario-player/pkg/storage"
	"github.com/jwebster45206/scenario-player/pkg/textfilter"
)

const (
	autoAdvanceDelay = 1500 * time.Millisecond
	maxEvents        = 12
)

type dialogueLine struct {
	speaker string
	text    string
}

// PlayerUI is the BubbleTea model of the terminal player. It owns the clock
// and the input and realizes interpreter effects as text.
type PlayerUI struct {
	store        storage.Storage
	settings     *config.PlayerSettings
	settingsPath string
	baseLogger   *slog.Logger
	logger       *slog.Logger // scoped to the open book
	interp       *interpreter.Interpreter

	dialogueViewport viewport.Model
	stageViewport    viewport.Model
	ready            bool
	width            int
	height           int
	err              error
	notice           string

	// Book selection state
	showBookModal bool
	books         []string
	selectedBook  int
	loadingBooks  bool
	loadingBook   bool

	// Save slot state
	showSlotModal bool
	slotSaving    bool
	slots         map[string]*state.Snapshot
	selectedSlot  int

	// Quit confirmation state
	showQuitModal bool

	bookID   string
	history  []dialogueLine
	current  *dialogueLine
	events   []string
	lastTick time.Time
	idleFor  time.Duration
}

var (
	dialoguePanelStyle = lipgloss.NewStyle().
				PaddingTop(2).
				PaddingBottom(1).
				PaddingLeft(3).
				PaddingRight(0)

	stagePanelStyle = lipgloss.NewStyle().
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

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // grey

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

func NewPlayerUI(store storage.Storage, chapter *book.Config, settings *config.PlayerSettings, settingsPath string, log *slog.Logger) PlayerUI {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dialogueVp := viewport.New(50, 20)
	dialogueVp.MouseWheelEnabled = true

	stageVp := viewport.New(20, 20)

	return PlayerUI{
		store:            store,
		settings:         settings,
		settingsPath:     settingsPath,
		baseLogger:       log,
		logger:           log,
		interp:           interpreter.New(chapter, log).WithRevealInterval(settings.RevealInterval()),
		dialogueViewport: dialogueVp,
		stageViewport:    stageVp,
		showBookModal:    true,
		loadingBooks:     true,
	}
}

func (m PlayerUI) Init() tea.Cmd {
	return tea.Batch(loadBooks(m.store), tick(m.settings.TickInterval()))
}

func (m PlayerUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The clock runs under every modal.
	if t, ok := msg.(tickMsg); ok {
		return m.onTick(time.Time(t))
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()
		return m, nil
	case booksLoadedMsg:
		m.loadingBooks = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.books = msg.books
			m.selectedBook = min(m.selectedBook, max(len(m.books)-1, 0))
		}
		return m, nil
	case bookLoadedMsg:
		m.loadingBook = false
		if msg.err != nil {
			logger.WithError(m.logger, msg.err).Warn("Failed to load book", "book", msg.id)
			m.err = msg.err
			return m, nil
		}
		m.start(msg.id, msg.nodes)
		m.apply(m.interp.Advance())
		m.refresh()
		return m, nil
	case slotsLoadedMsg:
		if msg.err != nil {
			logger.WithError(m.logger, msg.err).Warn("Failed to list save slots")
			m.notice = "Could not list saves: " + msg.err.Error()
			return m, nil
		}
		m.slots = msg.slots
		return m, nil
	case savedMsg:
		m.showSlotModal = false
		if msg.err != nil {
			logger.WithError(m.logger, msg.err).Warn("Failed to save slot", "slot", msg.slot)
			m.notice = "Save failed: " + msg.err.Error()
		} else {
			m.notice = "Saved " + msg.slot
		}
		m.refresh()
		return m, nil
	case slotDeletedMsg:
		if msg.err != nil {
			logger.WithError(m.logger, msg.err).Warn("Failed to delete slot", "slot", msg.slot)
			m.notice = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		delete(m.slots, msg.slot)
		m.notice = "Deleted " + msg.slot
		return m, nil
	case restoreMsg:
		if msg.err != nil {
			logger.WithError(m.logger, msg.err).Warn("Failed to restore slot")
			m.notice = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.showSlotModal = false
		m.start(msg.snap.Book, nil)
		m.apply(m.interp.Restore(msg.nodes, msg.snap))
		m.apply(m.interp.Advance())
		m.notice = "Loaded " + msg.snap.Slot
		m.refresh()
		return m, nil
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showBookModal {
		return m.updateBookModal(msg)
	}
	if m.showSlotModal {
		return m.updateSlotModal(msg)
	}
	return m.updatePlaying(msg)
}

func (m PlayerUI) onTick(now time.Time) (tea.Model, tea.Cmd) {
	interval := m.settings.TickInterval()
	dt := interval
	if !m.lastTick.IsZero() {
		dt = min(max(now.Sub(m.lastTick), 0), 4*interval)
	}
	m.lastTick = now

	if m.interp.Status() == state.StatusIdle {
		return m, tick(interval)
	}

	m.apply(m.interp.Tick(dt))

	if m.settings.AutoAdvance && m.interp.Status() == state.StatusAwaitingInput && m.interp.RevealDone() {
		m.idleFor += dt
		if m.idleFor >= autoAdvanceDelay {
			m.apply(m.interp.Advance())
		}
	} else {
		m.idleFor = 0
	}

	m.refresh()
	return m, tick(interval)
}

func (m PlayerUI) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		dvCmd tea.Cmd
		svCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.dialogueViewport, dvCmd = m.dialogueViewport.Update(msg)
		m.stageViewport, svCmd = m.stageViewport.Update(msg)
		return m, tea.Batch(dvCmd, svCmd)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEsc:
			m.apply(m.interp.Abort())
			return m, nil
		case tea.KeyEnter:
			return m.advance()
		}

		switch msg.String() {
		case " ":
			return m.advance()
		case "f":
			m.interp.SetFast(!m.interp.Session().Fast)
			m.refresh()
			return m, nil
		case "a":
			m.settings.AutoAdvance = !m.settings.AutoAdvance
			m.persistSettings()
			m.refresh()
			return m, nil
		case "r":
			m.history = nil
			m.current = nil
			m.apply(m.interp.Restart())
			m.apply(m.interp.Advance())
			m.notice = "Restarted " + m.bookID
			m.refresh()
			return m, nil
		case "s":
			return m.openSlots(true)
		case "l":
			return m.openSlots(false)
		case "c":
			_, text := m.interp.FullLine()
			if err := clipboard.WriteAll(textfilter.StripTags(text)); err != nil {
				m.notice = "Copy failed: " + err.Error()
			} else {
				m.notice = "Line copied"
			}
			m.refresh()
			return m, nil
		}
	}

	m.dialogueViewport, dvCmd = m.dialogueViewport.Update(msg)
	m.stageViewport, svCmd = m.stageViewport.Update(msg)
	return m, tea.Batch(dvCmd, svCmd)
}

func (m PlayerUI) advance() (tea.Model, tea.Cmd) {
	m.idleFor = 0
	m.apply(m.interp.Advance())
	m.refresh()
	return m, nil
}

func (m PlayerUI) updateBookModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		if m.loadingBooks {
			return m, tea.Quit
		}
		m.showQuitModal = true
		return m, nil
	}
	if m.loadingBooks || m.loadingBook || m.err != nil {
		return m, nil
	}

	switch key.Type {
	case tea.KeyUp:
		if m.selectedBook > 0 {
			m.selectedBook--
		}
	case tea.KeyDown:
		if m.selectedBook < len(m.books)-1 {
			m.selectedBook++
		}
	case tea.KeyEnter:
		if len(m.books) > 0 {
			m.loadingBook = true
			return m, loadBook(m.store, m.books[m.selectedBook])
		}
	default:
		if key.String() == "l" {
			return m.openSlots(false)
		}
	}
	return m, nil
}

func (m PlayerUI) openSlots(saving bool) (tea.Model, tea.Cmd) {
	if saving && m.interp.Status() == state.StatusIdle {
		return m, nil
	}
	m.showSlotModal = true
	m.slotSaving = saving
	return m, loadSlots(m.store)
}

func (m PlayerUI) updateSlotModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		m.showQuitModal = true
	case tea.KeyEsc:
		m.showSlotModal = false
	case tea.KeyUp:
		if m.selectedSlot > 0 {
			m.selectedSlot--
		}
	case tea.KeyDown:
		if m.selectedSlot < len(slotNames)-1 {
			m.selectedSlot++
		}
	case tea.KeyEnter:
		slot := slotNames[m.selectedSlot]
		if m.slotSaving {
			return m, saveSlot(m.store, m.interp.Snapshot(slot))
		}
		if m.slots[slot] == nil {
			return m, nil
		}
		return m, loadSlot(m.store, slot)
	default:
		if key.String() == "x" {
			return m, deleteSlot(m.store, slotNames[m.selectedSlot])
		}
	}
	return m, nil
}

func (m PlayerUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEnter:
		return m, tea.Quit
	}
	switch key.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N", "esc":
		m.showQuitModal = false
	}
	return m, nil
}

// start resets the transcript for a new run of bookID. With nodes it also
// activates the interpreter; a restore activates it itself.
func (m *PlayerUI) start(bookID string, nodes []book.Node) {
	m.bookID = bookID
	m.logger = logger.WithBook(m.baseLogger, bookID)
	m.history = nil
	m.current = nil
	m.events = nil
	m.idleFor = 0
	m.notice = ""
	m.showBookModal = false
	if nodes != nil {
		m.interp.Activate(bookID, nodes)
	}
}

// apply realizes effects: dialogue goes to the transcript, everything else to
// the event log.
func (m *PlayerUI) apply(effects []effect.Effect) {
	for _, e := range effects {
		m.logger.Debug("Effect", "kind", string(e.Kind()))

		switch e := e.(type) {
		case effect.ShowDialogue:
			if m.current != nil {
				m.history = append(m.history, *m.current)
			}
			m.current = &dialogueLine{speaker: e.CharName, text: e.Text}
			continue
		case effect.ScenarioEnded:
			if m.current != nil {
				m.history = append(m.history, *m.current)
				m.current = nil
			}
			if e.Aborted {
				m.notice = "Left " + m.bookID
			} else {
				m.notice = "Finished " + m.bookID
			}
			m.showBookModal = true
		}

		if line := describeEffect(e); line != "" {
			m.events = append(m.events, line)
		}
	}
	if len(m.events) > maxEvents {
		m.events = slices.Clone(m.events[len(m.events)-maxEvents:])
	}
}

func (m *PlayerUI) persistSettings() {
	if m.settingsPath == "" {
		return
	}
	if err := m.settings.Save(m.settingsPath); err != nil {
		logger.WithError(m.logger, err).Warn("Failed to save player settings", "file", m.settingsPath)
	}
}

func (m *PlayerUI) resize() {
	dialogueWidth := int(float64(m.width)*0.65) - 4
	stageWidth := m.width - dialogueWidth - 6

	m.dialogueViewport.Width = dialogueWidth - 2
	m.dialogueViewport.Height = m.height - 7
	m.stageViewport.Width = stageWidth - 2
	m.stageViewport.Height = m.height - 4
}

func (m *PlayerUI) refresh() {
	if !m.ready {
		return
	}
	m.dialogueViewport.SetContent(m.writeDialogue(m.dialogueViewport.Width - 6))
	m.dialogueViewport.GotoBottom()
	m.stageViewport.SetContent(m.writeStage())
}

func (m PlayerUI) writeDialogue(width int) string {
	width = max(width, 10)

	var content strings.Builder
	content.WriteString(titleStyle.Render("SCENARIO PLAYER") + "\n\n")
	content.WriteString(m.bookID + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, line := range m.history {
		content.WriteString(historyStyle.Render(formatLine(line.speaker, textfilter.StripTags(line.text), width)) + "\n\n")
	}

	if m.current != nil {
		speaker, visible := m.interp.Line()
		content.WriteString(formatSpeaker(speaker, visible, width))
		if m.interp.RevealDone() {
			content.WriteString(" " + promptStyle.Render("▼"))
		}
		content.WriteString("\n")
	}
	return content.String()
}

// formatLine wraps an unstyled transcript line.
func formatLine(speaker, text string, width int) string {
	if speaker == "" {
		return wordwrap.String(text, width)
	}
	return wordwrap.String(speaker+": "+text, width)
}

func formatSpeaker(speaker, text string, width int) string {
	if speaker == "" {
		return narratorStyle.Render(wordwrap.String(text, width))
	}
	wrapped := wordwrap.String(text, width-len(speaker)-2)
	return speakerStyle.Render(speaker+":") + " " + wrapped
}

func (m PlayerUI) writeStage() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("STAGE") + "\n\n")

	sess := m.interp.Session()
	offset, total := m.interp.Progress()
	content.WriteString(fmt.Sprintf("Status: %s\n", sess.Status))
	if sess.IsActive() {
		content.WriteString(fmt.Sprintf("Session: %s...\n", sess.ID.String()[:8]))
		content.WriteString(fmt.Sprintf("Progress: %d/%d\n", offset, total))
	}
	content.WriteString(fmt.Sprintf("Fast: %t  Auto: %t\n\n", sess.Fast, m.settings.AutoAdvance))

	stage := m.interp.Stage()
	content.WriteString("Objects:\n")
	objects := stage.Objects()
	if len(objects) == 0 {
		content.WriteString("None\n")
	}
	for _, obj := range objects {
		content.WriteString(fmt.Sprintf("• %s %s (%s)\n", obj.Category, obj.Label, obj.Layer))
	}

	content.WriteString("\nAudio:\n")
	playing := false
	for _, cat := range []effect.SoundCategory{effect.SoundBgm, effect.SoundAmbience, effect.SoundVoice} {
		if snd, ok := stage.Sound(cat); ok {
			playing = true
			content.WriteString(fmt.Sprintf("• %s %s %.0f%%\n", cat, snd.Label, 100*m.masterVolume(cat)*snd.Volume))
		}
	}
	if !playing {
		content.WriteString("Silent\n")
	}

	if overlay, ok := stage.Overlay(); ok {
		content.WriteString(fmt.Sprintf("\nOverlay: %s\n", overlay.Color))
	}

	if len(sess.Params) > 0 {
		content.WriteString("\nParams:\n")
		keys := make([]string, 0, len(sess.Params))
		for k := range sess.Params {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			content.WriteString(fmt.Sprintf("• %s = %s\n", k, sess.Params[k]))
		}
	}

	if len(m.events) > 0 {
		content.WriteString("\nEvents:\n")
		for _, line := range m.events {
			content.WriteString(promptStyle.Render(line) + "\n")
		}
	}

	if m.notice != "" {
		content.WriteString("\n" + loadingStyle.Render(m.notice) + "\n")
	}

	content.WriteString("\nKeys:\n")
	content.WriteString("• Enter/Space: Advance\n")
	content.WriteString("• F: Fast  A: Auto\n")
	content.WriteString("• S: Save  L: Load\n")
	content.WriteString("• R: Restart  C: Copy\n")
	content.WriteString("• Esc: Leave book\n")
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

func (m PlayerUI) masterVolume(cat effect.SoundCategory) float64 {
	switch cat {
	case effect.SoundVoice:
		return m.settings.VoiceVolume
	case effect.SoundSe:
		return m.settings.SeVolume
	default:
		return m.settings.BgmVolume
	}
}

func (m PlayerUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Unsaved progress will be lost.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	return m.place(modalStyle.Width(50).Render(content.String()))
}

func (m PlayerUI) renderBookModal() string {
	var content strings.Builder

	switch {
	case m.loadingBooks:
		content.WriteString(modalTitleStyle.Render("Loading Books..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Reading the library..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	case m.loadingBook:
		content.WriteString(modalTitleStyle.Render("Opening Book..."))
	case len(m.books) == 0:
		content.WriteString(modalTitleStyle.Render("No Books"))
		content.WriteString("\n\n")
		content.WriteString("The library has no *" + istorage.BookExt + " files.")
	default:
		content.WriteString(modalTitleStyle.Render("Select a Book"))
		content.WriteString("\n\n")
		if m.notice != "" {
			content.WriteString(loadingStyle.Render(m.notice) + "\n\n")
		}
		for i, id := range m.books {
			if i == m.selectedBook {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", id)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", id)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to play, L to load a save, Esc to exit"))
	}

	return m.place(modalStyle.Width(60).Render(content.String()))
}

func (m PlayerUI) renderSlotModal() string {
	var content strings.Builder
	if m.slotSaving {
		content.WriteString(modalTitleStyle.Render("Save"))
	} else {
		content.WriteString(modalTitleStyle.Render("Load"))
	}
	content.WriteString("\n\n")

	for i, slot := range slotNames {
		label := slot + "  (empty)"
		if snap := m.slots[slot]; snap != nil {
			label = fmt.Sprintf("%s  %s  %s", slot, snap.Book, snap.SavedAt.Local().Format("Jan 2 15:04"))
			if snap.Preview != "" {
				label += "\n    " + truncate(snap.Preview, 40)
			}
		}
		if i == m.selectedSlot {
			content.WriteString(modalSelectedItemStyle.Render("▶ " + label))
		} else {
			content.WriteString(modalItemStyle.Render("  " + label))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Enter to select, X to delete, Esc to close"))
	return m.place(modalStyle.Width(60).Render(content.String()))
}

func (m PlayerUI) place(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m PlayerUI) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showSlotModal {
		return m.renderSlotModal()
	}
	if m.showBookModal {
		return m.renderBookModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	dialogueWidth := int(float64(m.width)*0.65) - 4
	stageWidth := m.width - dialogueWidth - 6

	dialoguePanel := dialoguePanelStyle.Width(dialogueWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.dialogueViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(dialogueWidth-4, 0))),
		),
	)

	stagePanel := stagePanelStyle.Width(stageWidth).Height(m.height - 2).Render(
		m.stageViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, dialoguePanel, stagePanel)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
