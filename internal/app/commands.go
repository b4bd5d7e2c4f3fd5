package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"replayview/internal/star"
)

func fetchSessionCmd(source SessionSource, toggler *star.Toggler, secureID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		session, err := source.GetSession(ctx, secureID)
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		if toggler != nil {
			stored, storeErr := toggler.Store(ctx, session)
			if storeErr != nil {
				return sessionLoadedMsg{session: session, err: storeErr}
			}
			session = stored
		}
		return sessionLoadedMsg{session: session}
	}
}

func fetchViewerCmd(source ViewerSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		viewer, err := source.GetViewer(ctx)
		return viewerLoadedMsg{viewer: viewer, err: err}
	}
}

func pollCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollMsg{gen: gen}
	})
}

// sendStarCmd runs one mutation. Requests are never retried or cancelled.
func sendStarCmd(toggler *star.Toggler, req star.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return starResultMsg{outcome: toggler.Send(ctx, req)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
