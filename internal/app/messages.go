package app

import (
	"time"

	"replayview/internal/star"
	"replayview/internal/types"
)

type sessionLoadedMsg struct {
	session *types.Session
	err     error
}

type viewerLoadedMsg struct {
	viewer types.Viewer
	err    error
}

type pollMsg struct {
	gen int
}

type starResultMsg struct {
	outcome star.Outcome
}

type clipboardCopiedMsg struct {
	text    string
	success string
	method  clipboardMethod
	err     error
}

type tickMsg time.Time
