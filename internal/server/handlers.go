package server

import (
	"log"
	"net/http"

	"github.com/jonathan/jobradar/internal/aggregate"
	"github.com/jonathan/jobradar/internal/types"
)

// handleJobs serves the aggregated listing search.
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	defer func() {
		if p := recover(); p != nil {
			log.Printf("[server] jobs handler panic: %v", p)
			// Error payloads keep the success shape so clients can always
			// destructure the same fields.
			s.jsonResponse(w, http.StatusInternalServerError, map[string]any{
				"error": "failed to fetch jobs",
				"jobs":  []types.JobListing{},
				"total": 0,
			})
		}
	}()

	params := r.URL.Query()
	query := &aggregate.Query{
		Text:           params.Get("q"),
		Location:       params.Get("location"),
		WorkType:       params.Get("workType"),
		EmploymentType: params.Get("employmentType"),
		Seniority:      params.Get("seniority"),
		Category:       params.Get("category"),
	}
	if err := query.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	s.jsonResponse(w, http.StatusOK, s.engine.Search(r.Context(), query))
}

// handleJob serves one fully expanded listing by composite id.
func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	defer func() {
		if p := recover(); p != nil {
			log.Printf("[server] job handler panic: %v", p)
			s.errorResponse(w, http.StatusInternalServerError, "failed to fetch job")
		}
	}()

	job, err := s.resolver.Resolve(r.Context(), r.PathValue("id"))
	if err != nil {
		status := HTTPStatus(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			log.Printf("[server] resolve failed: %v", err)
			message = "failed to fetch job"
		}
		s.errorResponse(w, status, message)
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	s.jsonResponse(w, http.StatusOK, map[string]*types.JobListing{"job": job})
}
