package router

import (
	"context"

	"github.com/hackmd-tools/hackmd-cli/internal/service"
	"github.com/hackmd-tools/hackmd-cli/models"
)

// RegisterRoutes binds the service layer to the command table. This is
// the single place the full command surface is enumerated.
func RegisterRoutes(r *Router, svcs *service.Services) {
	r.Register("auth", "login", authLogin(svcs.Auth))
	r.Register("auth", "status", authStatus(svcs.Auth))
	r.Register("auth", "logout", authLogout(svcs.Auth))

	r.Register("note", "list", noteList(svcs.Notes))
	r.Register("note", "get", noteGet(svcs.Notes))
	r.Register("note", "create", noteCreate(svcs.Notes))
	r.Register("note", "update", noteUpdate(svcs.Notes))
	r.Register("note", "delete", noteDelete(svcs.Notes))

	r.Register("team", "list", teamList(svcs.Teams))
	r.Register("team", "notes", teamNotes(svcs.Teams))

	r.Register("template", "init", templateInit(svcs.Templates))
	r.Register("template", "list", templateList(svcs.Templates))
	r.Register("template", "show", templateShow(svcs.Templates))
	r.Register("template", "render", templateRender(svcs.Templates))
	r.Register("template", "save", templateSave(svcs.Templates))
}

// requireParam returns the named parameter or a classified validation
// error the router passes through unchanged.
func requireParam(req models.CommandRequest, name string) (string, error) {
	v := req.Param(name)
	if v == "" {
		return "", &models.CommandError{
			Class:   models.ClassClientError,
			Message: "missing required parameter: " + name,
		}
	}
	return v, nil
}

// ── auth ─────────────────────────────────────────────────────────────────────

func authLogin(svc service.AuthService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		token, err := requireParam(req, "token")
		if err != nil {
			return nil, err
		}
		return svc.Login(ctx, token, req.Param("profile"))
	}
}

func authStatus(svc service.AuthService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		return svc.Status(ctx, req.Param("profile"))
	}
}

func authLogout(svc service.AuthService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		return nil, svc.Logout(ctx, req.Param("profile"))
	}
}

// ── note ─────────────────────────────────────────────────────────────────────

func noteList(svc service.NoteService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		return svc.List(ctx)
	}
}

func noteGet(svc service.NoteService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		id, err := requireParam(req, "id")
		if err != nil {
			return nil, err
		}
		return svc.Get(ctx, id)
	}
}

func noteCreate(svc service.NoteService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		draft := models.NoteDraft{
			Title:           req.Param("title"),
			Content:         req.Param("content"),
			ReadPermission:  req.Param("read-permission"),
			WritePermission: req.Param("write-permission"),
		}
		return svc.Create(ctx, draft)
	}
}

func noteUpdate(svc service.NoteService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		id, err := requireParam(req, "id")
		if err != nil {
			return nil, err
		}
		draft := models.NoteDraft{
			Content:         req.Param("content"),
			ReadPermission:  req.Param("read-permission"),
			WritePermission: req.Param("write-permission"),
		}
		if draft == (models.NoteDraft{}) {
			return nil, &models.CommandError{
				Class:   models.ClassClientError,
				Message: "nothing to update: provide content or permissions",
			}
		}
		return nil, svc.Update(ctx, id, draft)
	}
}

func noteDelete(svc service.NoteService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		id, err := requireParam(req, "id")
		if err != nil {
			return nil, err
		}
		return nil, svc.Delete(ctx, id)
	}
}

// ── team ─────────────────────────────────────────────────────────────────────

func teamList(svc service.TeamService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		return svc.List(ctx)
	}
}

func teamNotes(svc service.TeamService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		path, err := requireParam(req, "path")
		if err != nil {
			return nil, err
		}
		return svc.ListNotes(ctx, path)
	}
}

// ── template ─────────────────────────────────────────────────────────────────

func templateInit(svc service.TemplateService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		return svc.Init()
	}
}

func templateList(svc service.TemplateService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		return svc.List()
	}
}

func templateShow(svc service.TemplateService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		name, err := requireParam(req, "name")
		if err != nil {
			return nil, err
		}
		return svc.Get(name)
	}
}

func templateRender(svc service.TemplateService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		name, err := requireParam(req, "name")
		if err != nil {
			return nil, err
		}
		// every other parameter is a substitution variable
		vars := make(map[string]string, len(req.Params))
		for k, v := range req.Params {
			if k != "name" {
				vars[k] = v
			}
		}
		return svc.Render(name, vars)
	}
}

func templateSave(svc service.TemplateService) HandlerFunc {
	return func(ctx context.Context, req models.CommandRequest) (any, error) {
		name, err := requireParam(req, "name")
		if err != nil {
			return nil, err
		}
		content, err := requireParam(req, "content")
		if err != nil {
			return nil, err
		}
		return nil, svc.Save(name, content)
	}
}
