package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mserban/atelier/internal/application/ports"
	"github.com/mserban/atelier/internal/application/projects"
	domerrors "github.com/mserban/atelier/internal/domain/errors"
	"github.com/mserban/atelier/internal/infrastructure/http/respond"
)

// maxUploadBytes bounds the in-memory part of multipart parsing; larger
// bodies spill to temp files.
const maxUploadBytes = 32 << 20

// ProjectsHandler handles the project CRUD surface, both the
// authenticated and the public read-only variants.
type ProjectsHandler struct {
	create  *projects.Create
	list    *projects.List
	get     *projects.Get
	update  *projects.Update
	respond *respond.Responder
}

func NewProjectsHandler(create *projects.Create, list *projects.List, get *projects.Get, update *projects.Update, rp *respond.Responder) *ProjectsHandler {
	return &ProjectsHandler{create: create, list: list, get: get, update: update, respond: rp}
}

type createProjectForm struct {
	Name        string  `form:"name" validate:"required,min=4,max=256"`
	URL         string  `form:"url" validate:"required,url,min=4,max=256"`
	Description *string `form:"description" validate:"omitempty,min=4,max=4096"`
	Active      string  `form:"active" validate:"required,oneof=true false"`
}

func (f *createProjectForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.URL = strings.TrimSpace(f.URL)
	trimPtr(f.Description)
	f.Active = strings.TrimSpace(f.Active)
}

type updateProjectForm struct {
	Name        *string `form:"name" validate:"omitempty,min=4,max=256"`
	URL         *string `form:"url" validate:"omitempty,url,min=4,max=256"`
	Description *string `form:"description" validate:"omitempty,max=4096"`
	Active      *string `form:"active" validate:"omitempty,oneof=true false"`
}

func (f *updateProjectForm) trim() {
	trimPtr(f.Name)
	trimPtr(f.URL)
	trimPtr(f.Description)
	trimPtr(f.Active)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// Create inserts a project and stores its photos. Returns {id}.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.respond.Error(w, r, domerrors.Schema(map[string]string{"body": "Corpul cererii nu este valid"}))
		return
	}

	form := createProjectForm{
		Name:        r.FormValue("name"),
		URL:         r.FormValue("url"),
		Description: formValuePtr(r, "description"),
		Active:      r.FormValue("active"),
	}
	form.trim()
	if err := checkStruct(form); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	photos, err := readPhotos(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	project, err := h.create.Execute(r.Context(), projects.CreateInput{
		Name:        form.Name,
		URL:         form.URL,
		Description: form.Description,
		Active:      form.Active == "true",
		Photos:      photos,
	})
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.JSON(w, http.StatusOK, map[string]int64{"id": project.ID})
}

// List serves both /projects/all and /public/projects/all.
func (h *ProjectsHandler) List(publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, order, vErr := listQuery(r)
		if vErr != nil {
			h.respond.Error(w, r, vErr)
			return
		}
		result, err := h.list.Execute(r.Context(), projects.ListInput{
			Order:      order,
			Page:       page,
			PublicOnly: publicOnly,
		})
		if err != nil {
			h.respond.Error(w, r, err)
			return
		}
		h.respond.JSON(w, http.StatusOK, result)
	}
}

// Get serves both /projects/{id} and /public/projects/{id}, wrapping the
// project in {project}.
func (h *ProjectsHandler) Get(publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, vErr := idParam(r)
		if vErr != nil {
			h.respond.Error(w, r, vErr)
			return
		}
		view, err := h.get.Execute(r.Context(), id, publicOnly)
		if err != nil {
			h.respond.Error(w, r, err)
			return
		}
		h.respond.JSON(w, http.StatusOK, map[string]*projects.ProjectView{"project": view})
	}
}

// Update applies a partial change and returns 204.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, vErr := idParam(r)
	if vErr != nil {
		h.respond.Error(w, r, vErr)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.respond.Error(w, r, domerrors.Schema(map[string]string{"body": "Corpul cererii nu este valid"}))
		return
	}

	form := updateProjectForm{
		Name:        formValuePtr(r, "name"),
		URL:         formValuePtr(r, "url"),
		Description: formValuePtr(r, "description"),
		Active:      formValuePtr(r, "active"),
	}
	form.trim()
	if err := checkStruct(form); err != nil {
		h.respond.Error(w, r, err)
		return
	}

	photos, err := readPhotos(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	input := projects.UpdateInput{
		Name:           form.Name,
		URL:            form.URL,
		Description:    form.Description,
		HasDescription: form.Description != nil,
		PhotosToDelete: r.Form["photosToDelete"],
		Photos:         photos,
	}
	if form.Active != nil {
		active := *form.Active == "true"
		input.Active = &active
	}

	if err := h.update.Execute(r.Context(), id, input); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// idParam parses the {id} route parameter. Non-numeric or non-positive
// ids are a shape failure, not a lookup miss.
func idParam(r *http.Request) (int64, *domerrors.ValidationError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domerrors.Schema(map[string]string{"id": "Trebuie sa fie un numar intreg"})
	}
	if id < 1 {
		return 0, domerrors.Schema(map[string]string{"id": "Valoarea minima este 1"})
	}
	return id, nil
}

// listQuery parses and validates the order/page query parameters. Both
// are mandatory; missing or bad values fail with 422.
func listQuery(r *http.Request) (int, ports.ProjectOrder, *domerrors.ValidationError) {
	details := make(map[string]string)

	order := ports.OrderNewest
	switch r.URL.Query().Get("order") {
	case "newest":
	case "oldest":
		order = ports.OrderOldest
	case "":
		details["order"] = "Campul este obligatoriu"
	default:
		details["order"] = "Trebuie sa fie una dintre valorile: newest, oldest"
	}

	page := 0
	if raw := r.URL.Query().Get("page"); raw == "" {
		details["page"] = "Campul este obligatoriu"
	} else {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			details["page"] = "Trebuie sa fie un numar intreg"
		case n < 1:
			details["page"] = "Valoarea minima este 1"
		default:
			page = n
		}
	}

	if len(details) > 0 {
		return 0, order, domerrors.Schema(details)
	}
	return page, order, nil
}

// formValuePtr returns the form value or nil when the field is absent.
// An empty string that was explicitly sent still counts as present.
func formValuePtr(r *http.Request, key string) *string {
	values, ok := r.Form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// readPhotos drains the uploaded photo parts into memory.
func readPhotos(r *http.Request) ([]projects.PhotoUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["photos"]
	photos := make([]projects.PhotoUpload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, err
		}
		photos = append(photos, projects.PhotoUpload{
			Content:  content,
			MimeType: header.Header.Get("Content-Type"),
		})
	}
	return photos, nil
}
