// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package api implements the HTTP API over the birthday list. Every handler
// is a thin request/response wrapper around one manager operation.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"birthday-manager/internal/birthday"
	"birthday-manager/internal/logger"
	"birthday-manager/internal/store"

	"github.com/gorilla/mux"
)

// maxImportSize bounds the body accepted by the import endpoint.
const maxImportSize = 1 << 20

// IndexedEntry is an entry together with its current position in the list.
type IndexedEntry struct {
	Index int `json:"index"`
	birthday.Entry
	Display string `json:"display"` // "<name> - <date> (<description>)"
}

// EntryRequest is the body of create and update requests. DateOfBirth is
// parsed with the configured input layout first.
type EntryRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Description string `json:"description"`
}

// Server serves the birthday API for one store. The manager itself is not
// safe for concurrent use, so every handler holds mu.
type Server struct {
	mu    sync.Mutex
	store *store.Store
}

// NewServer returns a Server backed by s.
func NewServer(s *store.Store) *Server {
	return &Server{store: s}
}

// Handler returns a router with all routes registered.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	s.RegisterEntryRoutes(router)
	return router
}

func (s *Server) RegisterEntryRoutes(router *mux.Router) {
	router.HandleFunc("/api/entries", s.listEntriesHandler).Methods("GET")
	router.HandleFunc("/api/entries", s.addEntryHandler).Methods("POST")
	router.HandleFunc("/api/entries/{index:[0-9]+}", s.getEntryHandler).Methods("GET")
	router.HandleFunc("/api/entries/{index:[0-9]+}", s.updateEntryHandler).Methods("PUT")
	router.HandleFunc("/api/entries/{index:[0-9]+}", s.deleteEntryHandler).Methods("DELETE")
	router.HandleFunc("/api/upcoming", s.upcomingHandler).Methods("GET")
	router.HandleFunc("/api/export", s.exportHandler).Methods("GET")
	router.HandleFunc("/api/import", s.importHandler).Methods("POST")
}

// writeJSONResponse writes a JSON response with CORS headers
func writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) indexed(entries []birthday.Entry, indexOf func(int) int) []IndexedEntry {
	out := make([]IndexedEntry, 0, len(entries))
	for i, e := range entries {
		out = append(out, IndexedEntry{
			Index:   indexOf(i),
			Entry:   e,
			Display: e.Format(s.store.Config.DateLayout),
		})
	}
	return out
}

// entryFromRequest decodes and validates a create/update body.
func (s *Server) entryFromRequest(r *http.Request) (birthday.Entry, error) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return birthday.Entry{}, fmt.Errorf("invalid request body: %w", err)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return birthday.Entry{}, fmt.Errorf("name is required")
	}
	dob, err := s.store.ParseDate(req.DateOfBirth)
	if err != nil {
		return birthday.Entry{}, fmt.Errorf("invalid date of birth: %w", err)
	}
	return birthday.NewEntry(req.Name, dob, req.Description), nil
}

// indexFromRequest reads the {index} path variable and checks it against
// the current list. Callers must hold s.mu.
func (s *Server) indexFromRequest(r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return 0, false
	}
	_, ok := s.store.Get(index)
	return index, ok
}

// persist saves the store after a mutation. On failure the entries are reset
// to before. Callers must hold s.mu.
func (s *Server) persist(w http.ResponseWriter, before []birthday.Entry) bool {
	if err := s.store.Save(); err != nil {
		s.store.Set(before)
		logger.Error("Failed to save birthdays", "path", s.store.Path, "error", err)
		http.Error(w, fmt.Sprintf("Error saving birthdays: %v", err), http.StatusInternalServerError)
		return false
	}
	return true
}

func (s *Server) listEntriesHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSONResponse(w, http.StatusOK, s.indexed(s.store.List(), func(i int) int { return i }))
}

func (s *Server) getEntryHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.indexFromRequest(r)
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	e, _ := s.store.Get(index)
	writeJSONResponse(w, http.StatusOK, s.indexed([]birthday.Entry{e}, func(int) int { return index })[0])
}

// addEntryHandler serves POST /api/entries and appends a new entry.
//
// Response:
// - 201 Created: the stored entry with its index
// - 400 Bad Request: missing name, unparseable date or malformed JSON
// - 500 Internal Server Error: the data file could not be written; the entry
//   is not kept
func (s *Server) addEntryHandler(w http.ResponseWriter, r *http.Request) {
	e, err := s.entryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.store.List()
	s.store.Add(e)
	if !s.persist(w, before) {
		return
	}
	index := s.store.Len() - 1
	logger.Info("Entry added via API", "name", e.Name, "index", index)
	writeJSONResponse(w, http.StatusCreated, s.indexed([]birthday.Entry{e}, func(int) int { return index })[0])
}

// updateEntryHandler serves PUT /api/entries/{index}. The manager ignores
// out-of-range indices, so the bounds are checked here to report 404.
func (s *Server) updateEntryHandler(w http.ResponseWriter, r *http.Request) {
	e, err := s.entryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.indexFromRequest(r)
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	before := s.store.List()
	s.store.EditAt(index, e)
	if !s.persist(w, before) {
		return
	}
	logger.Info("Entry updated via API", "name", e.Name, "index", index)
	writeJSONResponse(w, http.StatusOK, s.indexed([]birthday.Entry{e}, func(int) int { return index })[0])
}

func (s *Server) deleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, ok := s.indexFromRequest(r)
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	before := s.store.List()
	s.store.RemoveAt(index)
	if !s.persist(w, before) {
		return
	}
	logger.Info("Entry removed via API", "index", index)
	w.WriteHeader(http.StatusNoContent)
}

// upcomingHandler serves GET /api/upcoming?days=N. Without days the
// configured window is used. Indices refer to positions in the full list.
func (s *Server) upcomingHandler(w http.ResponseWriter, r *http.Request) {
	days := s.store.Config.UpcomingDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, fmt.Sprintf("invalid days value %q", raw), http.StatusBadRequest)
			return
		}
		days = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.store.List()
	upcoming := s.store.Upcoming(days)
	writeJSONResponse(w, http.StatusOK, s.indexed(upcoming, positionsIn(all, upcoming)))
}

// positionsIn maps the i-th element of subset to its index in all. subset
// must preserve the relative order of all.
func positionsIn(all, subset []birthday.Entry) func(int) int {
	positions := make([]int, len(subset))
	j := 0
	for i := range all {
		if j < len(subset) && all[i] == subset[j] {
			positions[j] = i
			j++
		}
	}
	return func(i int) int { return positions[i] }
}

// exportHandler serves GET /api/export with the data file contents.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := s.store.Manager.Save(&buf); err != nil {
		http.Error(w, fmt.Sprintf("Error exporting birthdays: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(buf.Bytes())
}

// importHandler serves POST /api/import. The body uses the data file format;
// malformed lines are skipped. Entries are appended unless replace=true.
//
// Response:
// - 200 OK: {"imported": n, "total": m}
// - 400 Bad Request: invalid replace flag or unreadable body
// - 413 Request Entity Too Large: body over maxImportSize, nothing imported
// - 500 Internal Server Error: the data file could not be written
func (s *Server) importHandler(w http.ResponseWriter, r *http.Request) {
	replace := false
	if raw := r.URL.Query().Get("replace"); raw != "" {
		var err error
		replace, err = strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid replace value %q", raw), http.StatusBadRequest)
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("Import body exceeds %d bytes", maxImportSize), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, fmt.Sprintf("Error reading request body: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.store.List()
	var n int
	if replace {
		n, err = s.store.Replace(bytes.NewReader(body))
	} else {
		n, err = s.store.Load(bytes.NewReader(body))
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.persist(w, before) {
		return
	}
	logger.Info("Entries imported via API", "count", n, "replace", replace)
	writeJSONResponse(w, http.StatusOK, map[string]int{"imported": n, "total": s.store.Len()})
}
