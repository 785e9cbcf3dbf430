package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screens/home"
	roadmapscreen "github.com/abhisek/careerpath/internal/screens/roadmap"
	"github.com/abhisek/careerpath/internal/screens/screentest"
	"github.com/abhisek/careerpath/internal/screens/unavailable"
	"github.com/abhisek/careerpath/internal/screens/welcome"
	"github.com/abhisek/careerpath/internal/session"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func extendedCatalog(t *testing.T) *roadmap.Catalog {
	t.Helper()
	ms := roadmap.Sample().Milestones()
	ms = append(ms, roadmap.Milestone{
		ID:            "6",
		Title:         "Accessibility",
		Category:      roadmap.CategorySpecialization,
		Prerequisites: []string{"1"},
	})
	c, err := roadmap.NewCatalog("v1.1.0", ms)
	require.NoError(t, err)
	return c
}

func TestStartsOnWelcome(t *testing.T) {
	svc, st := screentest.NewSession(t, "1")
	m := newAppModel(Options{Session: svc, EventRepo: st.EventRepo()})

	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok, "expected welcome screen, got %T", m.router.Active())
}

func TestStartsUnavailableOnLoadError(t *testing.T) {
	loadErr := errors.New("catalog missing")
	m := newAppModel(Options{Session: session.NewService(session.Options{}), LoadErr: loadErr})

	s, ok := m.router.Active().(*unavailable.Screen)
	require.True(t, ok, "expected unavailable screen, got %T", m.router.Active())
	assert.Equal(t, loadErr, s.Err())
}

func TestValidReloadRefreshesScreens(t *testing.T) {
	svc, st := screentest.NewSession(t)
	m := newAppModel(Options{Session: svc, EventRepo: st.EventRepo()})
	m.router.Replace(home.New(svc, st.EventRepo()))
	list := roadmapscreen.New(svc)
	m.router.Push(list)

	m, _ = update(t, m, reloadMsg{Catalog: extendedCatalog(t)})

	assert.Equal(t, 6, svc.State().Catalog().Len())
	assert.Empty(t, m.banner)

	// The list rebuilt its rows: "6" sits at level 2 after "2".
	list.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	list.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, "6", list.SelectedID())
}

func TestReloadAnnouncesAchievements(t *testing.T) {
	svc, st := screentest.NewSession(t, "1", "2", "3", "4")
	m := newAppModel(Options{Session: svc, EventRepo: st.EventRepo()})

	trimmed, err := roadmap.NewCatalog("v1.1.0", roadmap.SampleMilestones()[:4])
	require.NoError(t, err)
	m, _ = update(t, m, reloadMsg{Catalog: trimmed})

	assert.Contains(t, m.banner, "Achievement unlocked:")
	assert.Contains(t, m.banner, "Master")
}

func TestInvalidReloadKeepsCatalog(t *testing.T) {
	svc, st := screentest.NewSession(t, "1")
	m := newAppModel(Options{Session: svc, EventRepo: st.EventRepo()})
	before := svc.State().Catalog()

	m, _ = update(t, m, reloadMsg{Err: roadmap.ErrInvalidCatalog})

	assert.Same(t, before, svc.State().Catalog())
	assert.Contains(t, m.banner, "Roadmap unavailable")

	// A later valid reload clears the banner.
	m, _ = update(t, m, reloadMsg{Catalog: roadmap.Sample()})
	assert.Empty(t, m.banner)
}

func TestFirstValidReloadStartsSession(t *testing.T) {
	_, st := screentest.NewSession(t)
	svc := session.NewService(session.Options{
		EventRepo:    st.EventRepo(),
		SnapshotRepo: st.SnapshotRepo(),
		Logger:       slog.New(slog.DiscardHandler),
	})
	m := newAppModel(Options{Session: svc, EventRepo: st.EventRepo(), LoadErr: errors.New("bad file")})

	m, _ = update(t, m, reloadMsg{Err: errors.New("still bad")})
	s, ok := m.router.Active().(*unavailable.Screen)
	require.True(t, ok)
	assert.EqualError(t, s.Err(), "still bad")

	m, _ = update(t, m, reloadMsg{Catalog: roadmap.Sample()})
	assert.True(t, m.started)
	_, ok = m.router.Active().(*home.HomeScreen)
	assert.True(t, ok, "expected home screen, got %T", m.router.Active())

	_, err := svc.Complete(context.Background(), "1")
	assert.NoError(t, err)
}

func TestWaitForReload(t *testing.T) {
	assert.Nil(t, waitForReload(nil))

	ch := make(chan catalog.Reload, 1)
	ch <- catalog.Reload{Catalog: roadmap.Sample()}
	msg := waitForReload(ch)()
	r, ok := msg.(reloadMsg)
	require.True(t, ok)
	assert.NotNil(t, r.Catalog)

	close(ch)
	assert.IsType(t, reloadsClosedMsg{}, waitForReload(ch)())
}

func TestEscSkippedWhileFilterIsOpen(t *testing.T) {
	svc, st := screentest.NewSession(t)
	m := newAppModel(Options{Session: svc, EventRepo: st.EventRepo()})
	list := roadmapscreen.New(svc)
	m.router.Push(list)

	m, _ = update(t, m, tea.KeyPressMsg{Code: '/', Text: "/"})
	require.True(t, list.CapturingInput())

	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, list.CapturingInput(), "esc closes the filter")
	if cmd != nil {
		_, isPop := cmd().(router.PopScreenMsg)
		assert.False(t, isPop, "esc must not pop while the filter is open")
	}
	assert.Equal(t, 2, m.router.Depth())

	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestViewShowsBannerAndHeader(t *testing.T) {
	svc, st := screentest.NewSession(t, "1")
	m := newAppModel(Options{Session: svc, EventRepo: st.EventRepo()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, reloadMsg{Err: errors.New("cycle between 3 and 4")})

	content := m.frame()
	assert.True(t, strings.Contains(content, "20%"), "header should show overall percent")
	assert.True(t, strings.Contains(content, "cycle between 3 and 4"), "banner should show the reload error")
}
