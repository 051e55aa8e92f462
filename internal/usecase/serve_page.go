package usecase

import (
	"context"
	"net/http"

	"github.com/3-lines-studio/frost/internal/core"
)

type ServePageInput struct {
	Method      string
	RequestPath string
}

type ServePageOutput struct {
	Action      core.PageAction
	Route       string
	Body        []byte
	ContentType string
	Status      int
	Error       error
}

type PageService struct {
	routes RouteLookup
}

func NewPageService(routes RouteLookup) *PageService {
	return &PageService{
		routes: routes,
	}
}

func (s *PageService) ServePage(ctx context.Context, input ServePageInput) ServePageOutput {
	route, found := s.routes.Lookup(input.RequestPath)

	action := core.DecidePageAction(core.PageRequest{
		Method: input.Method,
		Found:  found,
	})

	switch action {
	case core.ActionNotFound:
		return ServePageOutput{
			Action: core.ActionNotFound,
			Status: http.StatusNotFound,
		}

	case core.ActionMethodNotAllowed:
		return ServePageOutput{
			Action: core.ActionMethodNotAllowed,
			Route:  route.Pattern,
			Status: http.StatusMethodNotAllowed,
		}
	}

	body, err := route.Handler(ctx)
	if err != nil {
		return ServePageOutput{
			Action: core.ActionRender,
			Route:  route.Pattern,
			Status: http.StatusInternalServerError,
			Error:  err,
		}
	}

	return ServePageOutput{
		Action:      core.ActionRender,
		Route:       route.Pattern,
		Body:        body,
		ContentType: core.ContentType(route.Pattern),
		Status:      http.StatusOK,
	}
}
