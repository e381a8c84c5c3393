package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestViewer(t *testing.T) *viewerModel {
	t.Helper()
	b, _, path := setup(t)
	doc := openTestDoc(t, b, path)
	m := newViewerModel(doc, options{pdf: path, width: 200, height: 200})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	return m
}

func TestViewer_Navigation(t *testing.T) {
	m := newTestViewer(t)

	if m.preview == "" || m.err != nil {
		t.Fatalf("initial preview missing: err=%v", m.err)
	}
	if m.size != "612 x 792 pt" {
		t.Errorf("size = %q", m.size)
	}

	steps := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{tea.KeyMsg{Type: tea.KeyLeft}, 0},
		{tea.KeyMsg{Type: tea.KeyLeft}, 0},
		{runes("n"), 1},
		{runes("p"), 0},
		{tea.KeyMsg{Type: tea.KeyEnd}, 1},
		{tea.KeyMsg{Type: tea.KeyHome}, 0},
	}
	for i, s := range steps {
		m.Update(s.key)
		if m.page != s.want {
			t.Fatalf("step %d (%s): page = %d, want %d", i, s.key, m.page, s.want)
		}
	}
}

func TestViewer_GoTo(t *testing.T) {
	m := newTestViewer(t)

	m.Update(runes("g"))
	if m.state != stateGoto {
		t.Fatal("g should open the page prompt")
	}
	m.Update(runes("2"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateView || m.page != 1 {
		t.Fatalf("state = %v, page = %d; want view on page 1", m.state, m.page)
	}
	if m.size != "842 x 595 pt" {
		t.Errorf("size = %q", m.size)
	}

	m.Update(runes("g"))
	m.Update(runes("9"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.page != 1 || !strings.Contains(m.status, "No page") {
		t.Errorf("page = %d, status = %q", m.page, m.status)
	}

	m.Update(runes("g"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateView {
		t.Error("esc should close the prompt")
	}
}

func TestViewer_Save(t *testing.T) {
	m := newTestViewer(t)

	m.Update(runes("s"))
	if m.err != nil {
		t.Fatalf("save failed: %v", m.err)
	}
	want := strings.TrimSuffix(m.opts.pdf, filepath.Ext(m.opts.pdf)) + "-p1.png"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("saved page missing: %v", err)
	}
	if !strings.Contains(m.View(), "Saved") {
		t.Error("view should report the save")
	}
}

func TestViewer_Quit(t *testing.T) {
	m := newTestViewer(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewer_RenderError(t *testing.T) {
	b, _, path := setup(t)
	doc := openTestDoc(t, b, path)
	m := newViewerModel(doc, options{pdf: path})

	doc.Close()
	m.Init()
	if m.err == nil {
		t.Fatal("closed document should surface an error")
	}
	if !strings.Contains(m.View(), "Error") {
		t.Error("view should show the error")
	}
}
