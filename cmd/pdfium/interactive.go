package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/pdfium-bridge/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#666666"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// chrome is the number of rows taken by everything but the preview.
const chrome = 7

type viewerState int

const (
	stateView viewerState = iota
	stateGoto
)

type viewerModel struct {
	doc     *render.Document
	opts    options
	input   textinput.Model
	state   viewerState
	page    int
	cols    int
	rows    int
	preview string
	size    string
	status  string
	err     error
}

func newViewerModel(doc *render.Document, opts options) *viewerModel {
	ti := textinput.New()
	ti.Prompt = "Go to page: "
	ti.Placeholder = fmt.Sprintf("1-%d", doc.PageCount())
	ti.CharLimit = 6
	ti.Width = 10

	return &viewerModel{
		doc:   doc,
		opts:  opts,
		input: ti,
		state: stateView,
		cols:  80,
		rows:  24,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

// refresh re-renders the preview of the current page. pdfium calls stay on
// the update goroutine.
func (m *viewerModel) refresh() {
	m.err = nil
	w, h, err := m.doc.PageSize(m.page)
	if err != nil {
		m.err = err
		m.preview = ""
		return
	}
	m.size = fmt.Sprintf("%.0f x %.0f pt", w, h)

	cols, rows := max(m.cols-2, 1), max(m.rows-chrome, 1)
	// two source pixels per cell keeps thin strokes visible
	img, err := m.doc.RenderPage(m.page, cols*2, rows*4, nil)
	if err != nil {
		m.err = err
		m.preview = ""
		return
	}
	m.preview = asciiPreview(img, cols, rows)
}

func (m *viewerModel) goTo(page int) {
	if page < 0 || page >= m.doc.PageCount() || page == m.page {
		return
	}
	m.page = page
	m.status = ""
	m.refresh()
}

func (m *viewerModel) save() {
	path := outputPath(m.opts.pdf, m.page)
	if err := renderToFile(m.doc, m.page, m.opts.width, m.opts.height, path); err != nil {
		m.err = err
		return
	}
	m.status = "Saved " + path
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateGoto {
			return m.updateGoto(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h", "p", "pgup":
			m.goTo(m.page - 1)
		case "right", "l", "n", "pgdown", " ":
			m.goTo(m.page + 1)
		case "home":
			m.goTo(0)
		case "end":
			m.goTo(m.doc.PageCount() - 1)
		case "g":
			m.state = stateGoto
			m.input.SetValue("")
			return m, m.input.Focus()
		case "s":
			m.save()
		}
	}
	return m, nil
}

func (m *viewerModel) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateView
		m.input.Blur()
		return m, nil
	case "enter":
		m.state = stateView
		m.input.Blur()
		n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil || n < 1 || n > m.doc.PageCount() {
			m.status = fmt.Sprintf("No page %q", m.input.Value())
			return m, nil
		}
		m.goTo(n - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *viewerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PDF Viewer"))
	b.WriteString(" ")
	b.WriteString(m.opts.pdf)
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Page %d/%d  %s", m.page+1, m.doc.PageCount(), m.size)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(previewStyle.Render(m.preview))
	}
	b.WriteString("\n")

	switch {
	case m.state == stateGoto:
		b.WriteString(m.input.View())
	case m.status != "":
		b.WriteString(resultStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ page • g go to • s save • q quit"))

	return b.String()
}

func runInteractive(doc *render.Document, opts options) error {
	p := tea.NewProgram(newViewerModel(doc, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
