// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for music discovery:
//  1. [GenreListView] : Pick a genre to browse
//  2. [SongListView] : Browse recommendations and rate songs
//  3. [HistoryView] : Review past likes and dislikes
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Rating writes apply optimistically through a [Reconciler]: the row repaints
// before the store confirms, failures roll back, and regaining focus resyncs
// displayed values against the store.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus
// l/d for like/dislike, with contextual help displayed via charmbracelet/bubbles/help.
package ui
