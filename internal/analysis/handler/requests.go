package handler

import (
	"net/url"
	"strings"

	"amlscope/internal/screening"
	dErrors "amlscope/pkg/domain-errors"
)

const maxFieldLength = 2048

// SubmitRequest is the HTTP request body for POST /screenings.
type SubmitRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	DOB  string `json:"dob"`
}

// Validate trims and checks the form fields.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *SubmitRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if len(r.Name) > maxFieldLength || len(r.URL) > maxFieldLength || len(r.DOB) > maxFieldLength {
		return dErrors.New(dErrors.CodeValidation, "fields must be at most 2048 characters")
	}

	r.Name = strings.TrimSpace(r.Name)
	r.URL = strings.TrimSpace(r.URL)
	r.DOB = strings.TrimSpace(r.DOB)
	if r.Name == "" || r.URL == "" {
		return dErrors.New(dErrors.CodeValidation, "Name and article URL are required.")
	}

	u, err := url.Parse(r.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return dErrors.New(dErrors.CodeValidation, "Article URL must be an http or https link.")
	}
	return nil
}

// ToScreeningRequest builds the service request. An empty date of birth is
// omitted rather than sent blank.
func (r *SubmitRequest) ToScreeningRequest() screening.Request {
	req := screening.Request{Name: r.Name, URL: r.URL}
	if r.DOB != "" {
		dob := r.DOB
		req.DOB = &dob
	}
	return req
}
