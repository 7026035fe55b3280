package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunescout/internal/models"
	"github.com/desertthunder/tunescout/internal/repositories"
	"github.com/desertthunder/tunescout/internal/services"
	"github.com/desertthunder/tunescout/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GenreListView ViewState = iota
	SongListView
	HistoryView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	engine     *tasks.DiscoveryEngine
	store      *repositories.RatingStore
	userID     string
	width      int
	height     int
	genreList  list.Model
	songList   list.Model
	songs      []tasks.AnnotatedSong
	genre      string
	histList   list.Model
	reconciler *Reconciler
	status     string
	err        error
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// An empty userID renders the browse-only experience: rating keys prompt the
// user to sign in instead of writing.
func NewModel(ctx context.Context, engine *tasks.DiscoveryEngine, store *repositories.RatingStore, userID string) *Model {
	genres := services.Genres()
	items := make([]list.Item, len(genres))
	for i, genre := range genres {
		items[i] = genreItem{name: genre}
	}

	genreList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	genreList.Title = "Genres"

	// The song and history lists are rebuilt on fetch, but they need real
	// delegates from the start: the initial window-size message resizes them
	// before any fetch has happened.
	songList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	histList := list.New(nil, list.NewDefaultDelegate(), 0, 0)

	return &Model{
		ctx:        ctx,
		view:       GenreListView,
		engine:     engine,
		store:      store,
		userID:     userID,
		genreList:  genreList,
		songList:   songList,
		histList:   histList,
		reconciler: NewReconciler(),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init is a no-op; the genre list is static.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.genreList.SetSize(msg.Width-4, msg.Height-8)
		m.songList.SetSize(msg.Width-4, msg.Height-8)
		m.histList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GenreListView:
			return m.handleGenreListKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case HistoryView:
			return m.handleHistoryKeys(msg)
		}

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = GenreListView
			return m, nil
		}
		m.err = nil
		m.genre = msg.genre
		m.songs = msg.songs

		// Seed the reconciler with the feed's annotations so markers render
		// on first paint.
		annotated := map[string]models.RatingValue{}
		ids := make([]string, 0, len(msg.songs))
		for _, song := range msg.songs {
			ids = append(ids, song.ID)
			if song.Rating != nil {
				annotated[song.ID] = *song.Rating
			}
		}
		m.reconciler.Resync(ids, annotated)

		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song.Song, reconciler: m.reconciler}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = fmt.Sprintf("%s songs", msg.genre)
		m.songList.SetSize(m.width-4, m.height-8)
		m.view = SongListView
		return m, nil

	case rateResolvedMsg:
		m.reconciler.Resolve(msg.op, msg.err)
		if msg.err != nil {
			m.status = "rating failed, reverted"
		}
		return m, nil

	case ratingsSyncedMsg:
		if msg.err == nil {
			m.reconciler.Resync(msg.songIDs, msg.ratings)
		}
		return m, nil

	case historyFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.ratings))
		for i, rating := range msg.ratings {
			items[i] = historyItem{rating: rating}
		}
		m.histList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.histList.Title = "Rating History"
		m.histList.SetSize(m.width-4, m.height-8)
		m.view = HistoryView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case GenreListView:
		return m.renderGenreList()
	case SongListView:
		return m.renderSongList()
	case HistoryView:
		return m.renderHistory()
	default:
		return ""
	}
}

func (m *Model) handleGenreListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "h":
		return m, m.fetchHistory()
	case "enter":
		selected := m.genreList.SelectedItem()
		if selected != nil {
			if g, ok := selected.(genreItem); ok {
				return m, m.fetchSongs(g.name)
			}
		}
	}

	var cmd tea.Cmd
	m.genreList, cmd = m.genreList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = GenreListView
		m.status = ""
		return m, nil
	case "l":
		return m.rateSelected(models.RatingLike)
	case "d":
		return m.rateSelected(models.RatingDislike)
	case "r":
		return m, m.fetchSongs(m.genre)
	case "h":
		return m, m.fetchHistory()
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if len(m.songs) > 0 {
			m.view = SongListView
			// Ratings may have changed while this screen was up; resync the
			// song list against the store before showing it again.
			return m, m.syncRatings()
		}
		m.view = GenreListView
		return m, nil
	}

	var cmd tea.Cmd
	m.histList, cmd = m.histList.Update(msg)
	return m, cmd
}

func (m *Model) rateSelected(value models.RatingValue) (tea.Model, tea.Cmd) {
	if m.userID == "" {
		m.status = "sign in to rate songs"
		return m, nil
	}

	selected := m.songList.SelectedItem()
	if selected == nil {
		return m, nil
	}
	item, ok := selected.(songItem)
	if !ok {
		return m, nil
	}

	m.status = ""
	op := m.reconciler.Tap(item.song.ID, value)
	return m, m.persistRating(item.song, op)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case GenreListView:
		m.genreList, cmd = m.genreList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	case HistoryView:
		m.histList, cmd = m.histList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchSongs(genre string) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.engine.Recommendations(m.ctx, m.userID, genre, 0)
		return songsFetchedMsg{genre: genre, songs: songs, err: err}
	}
}

func (m *Model) persistRating(song models.Song, op Op) tea.Cmd {
	return func() tea.Msg {
		var err error
		if op.Target == nil {
			_, err = m.store.Unrate(m.userID, song.ID)
		} else {
			_, err = m.store.Rate(m.userID, song, *op.Target)
		}
		return rateResolvedMsg{op: op, err: err}
	}
}

func (m *Model) syncRatings() tea.Cmd {
	ids := make([]string, 0, len(m.songs))
	for _, song := range m.songs {
		ids = append(ids, song.ID)
	}

	return func() tea.Msg {
		ratings, err := m.store.RatingsForSongs(m.userID, ids)
		return ratingsSyncedMsg{songIDs: ids, ratings: ratings, err: err}
	}
}

func (m *Model) fetchHistory() tea.Cmd {
	if m.userID == "" {
		m.status = "sign in to see rating history"
		return nil
	}

	return func() tea.Msg {
		ratings, err := m.store.ListRatings(m.userID, nil)
		return historyFetchedMsg{ratings: ratings, err: err}
	}
}

func (m *Model) renderGenreList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.history, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	view := fmt.Sprintf("%s\n\n%s", m.genreList.View(), helpView)
	if m.status != "" {
		view = fmt.Sprintf("%s\n%s", view, styles.warn.Render(m.status))
	}
	return view
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.like, m.keys.dislike, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	view := fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
	if m.status != "" {
		view = fmt.Sprintf("%s\n%s", view, styles.warn.Render(m.status))
	}
	return view
}

func (m *Model) renderHistory() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.histList.View(), helpView)
}
