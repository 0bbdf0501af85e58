package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bidboard/internal/validate"
	"bidboard/models"
)

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

// verifyDivisions checks that every referenced division id exists, using a
// single count query over the deduplicated set. A false return means the
// error response has already been written.
func (h *Handler) verifyDivisions(w http.ResponseWriter, r *http.Request, ids []string) bool {
	unique := dedupe(ids)
	count, err := h.Store.CountDivisions(r.Context(), unique)
	if err != nil {
		h.fail(w, err)
		return false
	}
	if count != len(unique) {
		h.respondError(w, http.StatusBadRequest, CodeBadRequest, "One or more divisions do not exist")
		return false
	}
	return true
}

// verifySubdivisions is the same check for optional subdivision ids, so a
// bad id comes back as a 400 instead of a foreign-key error.
func (h *Handler) verifySubdivisions(w http.ResponseWriter, r *http.Request, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	unique := dedupe(ids)
	count, err := h.Store.CountSubdivisions(r.Context(), unique)
	if err != nil {
		h.fail(w, err)
		return false
	}
	if count != len(unique) {
		h.respondError(w, http.StatusBadRequest, CodeBadRequest, "One or more subdivisions do not exist")
		return false
	}
	return true
}

func projectDivisionIDs(links []models.ProjectDivision) []string {
	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.DivisionID)
	}
	return ids
}

func projectSubdivisionIDs(links []models.ProjectDivision) []string {
	ids := make([]string, 0, len(links))
	for _, link := range links {
		if link.SubdivisionID != nil {
			ids = append(ids, *link.SubdivisionID)
		}
	}
	return ids
}

// ListProjectsHandler handles GET /api/projects.
func (h *Handler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context(), UserID(r.Context()))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, projects)
}

// CreateProjectHandler handles POST /api/projects.
func (h *Handler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var in validate.CreateProjectInput
	if !h.decode(w, r, &in) {
		return
	}
	project, err := in.Validate()
	if err != nil {
		h.fail(w, err)
		return
	}
	if !h.verifyDivisions(w, r, projectDivisionIDs(project.ProjectDivisions)) {
		return
	}
	if !h.verifySubdivisions(w, r, projectSubdivisionIDs(project.ProjectDivisions)) {
		return
	}

	project.UserID = UserID(r.Context())
	if err := h.Store.CreateProject(r.Context(), project); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusCreated, project)
}

// GetProjectHandler handles GET /api/projects/{projectId}.
func (h *Handler) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectId")
	project, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	if project.UserID != UserID(r.Context()) {
		h.respondError(w, http.StatusForbidden, CodeForbidden, "Forbidden")
		return
	}
	h.respond(w, http.StatusOK, project)
}

// UpdateProjectHandler handles PUT /api/projects/{projectId}. The body is a
// patch: omitted fields keep their stored values.
func (h *Handler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectId")
	owner, err := h.Store.GetProjectOwner(r.Context(), id)
	if !h.requireOwner(w, r, owner, err) {
		return
	}

	var in validate.UpdateProjectInput
	if !h.decode(w, r, &in) {
		return
	}
	project, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := in.ApplyTo(project); err != nil {
		h.fail(w, err)
		return
	}
	if in.ReplacesDivisions() {
		if !h.verifyDivisions(w, r, projectDivisionIDs(project.ProjectDivisions)) {
			return
		}
		if !h.verifySubdivisions(w, r, projectSubdivisionIDs(project.ProjectDivisions)) {
			return
		}
	}

	if err := h.Store.UpdateProject(r.Context(), project, in.ReplacesDivisions()); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, project)
}

// DeleteProjectHandler handles DELETE /api/projects/{projectId}. Linked
// invitations and bids go with it via cascading deletes.
func (h *Handler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectId")
	owner, err := h.Store.GetProjectOwner(r.Context(), id)
	if !h.requireOwner(w, r, owner, err) {
		return
	}
	if err := h.Store.DeleteProject(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}
