package http

import (
	"encoding/json"
	"net/http"

	"github.com/ayumu-h/curio"
	"github.com/go-chi/chi/v5"
)

// extractRequest is the body of POST /api/extract and /api/preview.
type extractRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := curio.ValidateTargetURL(req.URL); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.extractSem.Acquire(r.Context(), 1); err != nil {
		s.respondError(w, r, curio.Errorf(curio.EUNAVAILABLE, "extraction canceled: %v", err))
		return
	}
	defer s.extractSem.Release(1)

	meta, err := s.MetadataService.Extract(r.Context(), req.URL)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, meta)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := curio.ValidateTargetURL(req.URL); err != nil {
		s.respondError(w, r, err)
		return
	}

	preview, err := s.PreviewService.Preview(r.Context(), req.URL)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, preview)
}

func (s *Server) handleCabinetCreate(w http.ResponseWriter, r *http.Request) {
	var cabinet curio.Cabinet
	if err := decodeJSON(r, &cabinet); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.CabinetService.CreateCabinet(r.Context(), &cabinet); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, cabinet)
}

func (s *Server) handleCabinetList(w http.ResponseWriter, r *http.Request) {
	filter := curio.CabinetFilter{}
	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}
	cabinets, err := s.CabinetService.FindCabinets(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, cabinets)
}

func (s *Server) handleCabinetGet(w http.ResponseWriter, r *http.Request) {
	cabinet, err := s.CabinetService.FindCabinetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, cabinet)
}

func (s *Server) handleCabinetUpdate(w http.ResponseWriter, r *http.Request) {
	var upd curio.CabinetUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.respondError(w, r, err)
		return
	}
	cabinet, err := s.CabinetService.UpdateCabinet(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, cabinet)
}

func (s *Server) handleCabinetDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.CabinetService.DeleteCabinet(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	var item curio.Item
	if err := decodeJSON(r, &item); err != nil {
		s.respondError(w, r, err)
		return
	}
	item.CabinetID = chi.URLParam(r, "id")
	if err := s.ItemService.CreateItem(r.Context(), &item); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleItemList(w http.ResponseWriter, r *http.Request) {
	cabinetID := chi.URLParam(r, "id")
	filter := curio.ItemFilter{CabinetID: &cabinetID}
	if title := r.URL.Query().Get("title"); title != "" {
		filter.Title = &title
	}
	items, err := s.ItemService.FindItems(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleItemGet(w http.ResponseWriter, r *http.Request) {
	item, err := s.ItemService.FindItemByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	var upd curio.ItemUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.respondError(w, r, err)
		return
	}
	item, err := s.ItemService.UpdateItem(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.ItemService.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNoteCreate(w http.ResponseWriter, r *http.Request) {
	var note curio.Note
	if err := decodeJSON(r, &note); err != nil {
		s.respondError(w, r, err)
		return
	}
	note.ItemID = chi.URLParam(r, "id")
	if err := s.NoteService.CreateNote(r.Context(), &note); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, note)
}

func (s *Server) handleNoteList(w http.ResponseWriter, r *http.Request) {
	notes, err := s.NoteService.FindNotesByItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, notes)
}

func (s *Server) handleNoteGet(w http.ResponseWriter, r *http.Request) {
	note, err := s.NoteService.FindNoteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, note)
}

func (s *Server) handleNoteUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	note, err := s.NoteService.UpdateNote(r.Context(), chi.URLParam(r, "id"), req.Body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, note)
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.NoteService.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON reads a JSON request body, rejecting anything else as
// EINVALID before the handler does any work.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return curio.Errorf(curio.EINVALID, "invalid JSON body: %v", err)
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "err", err)
	}
}

// statusFromCode maps domain error codes to HTTP status codes.
func statusFromCode(code string) int {
	switch code {
	case curio.EINVALID:
		return http.StatusBadRequest
	case curio.ENOTFOUND:
		return http.StatusNotFound
	case curio.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := curio.ErrorCode(err)
	status := statusFromCode(code)
	if status >= 500 {
		s.Logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	s.respondJSON(w, status, map[string]string{"error": curio.ErrorMessage(err)})
}
