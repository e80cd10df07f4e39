package browser

import (
	"context"
	"errors"
	"ossgate/pkg/storage"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	listings map[string][]storage.Item
	err      error
	prefixes []string
}

func (f *fakeLister) ListObjects(_ context.Context, _ storage.Config, params *storage.ListParams) ([]storage.Item, error) {
	f.prefixes = append(f.prefixes, params.Prefix)
	if f.err != nil {
		return nil, f.err
	}
	return f.listings[params.Prefix], nil
}

func newFakeLister() *fakeLister {
	return &fakeLister{listings: map[string][]storage.Item{
		"": {
			{Key: "photos/", IsDirectory: true},
			{Key: "readme.txt", Size: 5},
		},
		"photos/": {
			{Key: "photos/2024/", IsDirectory: true},
			{Key: "photos/cat.jpg", Size: 2048},
		},
	}}
}

// Runs cmd and returns the first listing result it produces
func loaded(t *testing.T, cmd tea.Cmd) itemsLoadedMsg {
	t.Helper()
	require.NotNil(t, cmd)

	switch msg := cmd().(type) {
	case itemsLoadedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(itemsLoadedMsg); ok {
				return m
			}
		}
	}
	t.Fatal("command did not list objects")
	return itemsLoadedMsg{}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func start(t *testing.T, lister Lister) Model {
	t.Helper()
	m := New(context.Background(), lister, storage.Config{Provider: "minio", Bucket: "media"}, "")
	m, _ = update(t, m, loaded(t, m.Init()))
	return m
}

func TestBrowserInitialListing(t *testing.T) {
	m := start(t, newFakeLister())

	view := m.View()
	assert.Contains(t, view, "minio://media/")
	assert.Contains(t, view, "photos/")
	assert.Contains(t, view, "readme.txt")
	assert.NotContains(t, view, "Loading")
}

func TestBrowserDescendAndGoUp(t *testing.T) {
	lister := newFakeLister()
	m := start(t, lister)

	m, cmd := update(t, m, key("enter"))
	assert.Equal(t, "photos/", m.Prefix())
	assert.Contains(t, m.View(), "Loading")

	m, _ = update(t, m, loaded(t, cmd))
	view := m.View()
	assert.Contains(t, view, "cat.jpg")
	assert.Contains(t, view, "2024/")
	assert.NotContains(t, view, "photos/cat.jpg")

	m, cmd = update(t, m, key("backspace"))
	assert.Equal(t, "", m.Prefix())
	m, _ = update(t, m, loaded(t, cmd))
	assert.Contains(t, m.View(), "readme.txt")

	assert.Equal(t, []string{"", "photos/", ""}, lister.prefixes)
}

func TestBrowserEnterOnFileDoesNothing(t *testing.T) {
	m := start(t, newFakeLister())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, key("enter"))

	assert.Equal(t, "", m.Prefix())
	assert.Nil(t, cmd)
}

func TestBrowserBackspaceAtRoot(t *testing.T) {
	m := start(t, newFakeLister())

	m, cmd := update(t, m, key("backspace"))
	assert.Equal(t, "", m.Prefix())
	assert.Nil(t, cmd)
}

func TestBrowserDropsStaleListing(t *testing.T) {
	m := start(t, newFakeLister())
	m, _ = update(t, m, key("enter"))

	m, _ = update(t, m, itemsLoadedMsg{prefix: "", items: []storage.Item{{Key: "stale.txt"}}})
	assert.Contains(t, m.View(), "Loading")
	assert.NotContains(t, m.View(), "stale.txt")
}

func TestBrowserShowsErrorAndRefreshes(t *testing.T) {
	lister := newFakeLister()
	lister.err = errors.New("request timed out")
	m := start(t, lister)

	assert.Contains(t, m.View(), "request timed out")

	lister.err = nil
	m, cmd := update(t, m, key("r"))
	m, _ = update(t, m, loaded(t, cmd))
	assert.Contains(t, m.View(), "readme.txt")
}

func TestBrowserQuit(t *testing.T) {
	m := start(t, newFakeLister())

	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestParentPrefix(t *testing.T) {
	for in, want := range map[string]string{
		"photos/2024/": "photos/",
		"photos/":      "",
		"":             "",
		"a/b/c/":       "a/b/",
	} {
		assert.Equal(t, want, parentPrefix(in), in)
	}
}

func TestEmptyFolderView(t *testing.T) {
	m := New(context.Background(), newFakeLister(), storage.Config{Bucket: "media"}, "nothing/")
	m, _ = update(t, m, itemsLoadedMsg{prefix: "nothing/"})

	assert.True(t, strings.Contains(m.View(), "(empty)"))
}
