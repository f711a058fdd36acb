package http

import "net/http"

// categoriesResponse lists the provisioned category names.
type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	names, err := s.tracker.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, r, "list_categories", err)
		return
	}

	if names == nil {
		names = []string{}
	}

	NewJSONResponse().Body(categoriesResponse{Categories: names}).Write(w)
}
