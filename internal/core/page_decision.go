package core

import "net/http"

type PageAction int

const (
	ActionRender PageAction = iota
	ActionNotFound
	ActionMethodNotAllowed
)

type PageRequest struct {
	Method string
	Found  bool
}

func DecidePageAction(req PageRequest) PageAction {
	if !req.Found {
		return ActionNotFound
	}

	switch req.Method {
	case "", http.MethodGet, http.MethodHead:
		return ActionRender
	default:
		return ActionMethodNotAllowed
	}
}

const AllowedMethods = "GET, HEAD"
