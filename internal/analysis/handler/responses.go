package handler

import "amlscope/internal/facets"

// ReportResponse is the HTTP response for GET /analysis/{id}.
type ReportResponse struct {
	AnalysisID string        `json:"analysis_id"`
	Report     facets.Report `json:"report"`
}

// NotFoundResponse carries the way back to the submission form.
type NotFoundResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Back             string `json:"back"`
}
