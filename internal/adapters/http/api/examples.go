package api

import (
	"net/http"
)

type exampleResponse struct {
	Label string `json:"label"`
	estimateResponse
}

// ExamplesHandler serves valuations of the sample cars.
type ExamplesHandler struct {
	deps Dependencies
}

// NewExamplesHandler creates a new examples handler.
func NewExamplesHandler(deps Dependencies) *ExamplesHandler {
	return &ExamplesHandler{deps: deps}
}

// HandleGetExamples handles GET /examples requests.
func (h *ExamplesHandler) HandleGetExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	examples, err := h.deps.Examples(r.Context())
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	out := make([]exampleResponse, 0, len(examples))
	for _, ex := range examples {
		out = append(out, exampleResponse{Label: ex.Label, estimateResponse: newEstimateResponse(ex.Estimate)})
	}
	writeJSON(w, http.StatusOK, out)
}
