package deals

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/blackwell-systems/outcome"
	"github.com/blackwell-systems/outcome/crmerr"
	outchi "github.com/blackwell-systems/outcome/integrations/chi"
	"github.com/go-chi/chi/v5"
)

type api struct {
	svc *Service
}

// NewRouter returns the deal API. Escaped errors and panics are answered
// by h.
//
//	GET    /deals              list (page, pageSize, search)
//	POST   /deals              create
//	GET    /deals/{id}         get
//	PATCH  /deals/{id}         rename
//	PUT    /deals/{id}/stage   move to another stage
//	POST   /deals/{id}/archive archive
//	DELETE /deals/{id}         delete
func NewRouter(svc *Service, h *outcome.ExceptionHandler) http.Handler {
	a := &api{svc: svc}

	r := chi.NewRouter()
	r.Use(outchi.Trace, outchi.Recoverer(h))
	r.NotFound(outchi.NotFound)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		outcome.WriteResult(w, r, outcome.Success())
	})

	r.Method(http.MethodGet, "/deals", h.Handler(a.list))
	r.Method(http.MethodPost, "/deals", h.Handler(a.create))
	r.Method(http.MethodGet, "/deals/{id}", h.Handler(a.get))
	r.Method(http.MethodPatch, "/deals/{id}", h.Handler(a.rename))
	r.Method(http.MethodPut, "/deals/{id}/stage", h.Handler(a.moveStage))
	r.Method(http.MethodPost, "/deals/{id}/archive", h.Handler(a.archive))
	r.Method(http.MethodDelete, "/deals/{id}", h.Handler(a.delete))
	return r
}

func (a *api) list(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("pageSize"))

	v, err := a.svc.List(r.Context(), outcome.NewPageParams(page, size, q.Get("search")))
	if err != nil {
		return err
	}
	outcome.WriteOK(w, r, v)
	return nil
}

func (a *api) create(w http.ResponseWriter, r *http.Request) error {
	var in CreateDeal
	if !decode(w, r, &in) {
		return nil
	}

	v, err := a.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	location := ""
	if v.IsSuccess() {
		location = "/deals/" + v.Value().ID
	}
	outcome.WriteCreated(w, r, v, location)
	return nil
}

func (a *api) get(w http.ResponseWriter, r *http.Request) error {
	v, err := a.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	outcome.WriteOK(w, r, v)
	return nil
}

func (a *api) rename(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &in) {
		return nil
	}

	v, err := a.svc.Rename(r.Context(), chi.URLParam(r, "id"), in.Name)
	if err != nil {
		return err
	}
	outcome.WriteOK(w, r, v)
	return nil
}

func (a *api) moveStage(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Stage Stage `json:"stage"`
	}
	if !decode(w, r, &in) {
		return nil
	}

	v, err := a.svc.MoveStage(r.Context(), chi.URLParam(r, "id"), in.Stage)
	if err != nil {
		return err
	}
	outcome.WriteOK(w, r, v)
	return nil
}

func (a *api) archive(w http.ResponseWriter, r *http.Request) error {
	res, err := a.svc.Archive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	outcome.WriteNoContent(w, r, res)
	return nil
}

func (a *api) delete(w http.ResponseWriter, r *http.Request) error {
	res, err := a.svc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	outcome.WriteNoContent(w, r, res)
	return nil
}

// decode reads the JSON body into dst, answering malformed bodies with
// General.InvalidRequest.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		outcome.WriteProblem(w, r, crmerr.GeneralInvalidRequest)
		return false
	}
	return true
}
