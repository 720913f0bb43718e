package handler

import (
	"strings"

	"amlscope/internal/screening"
	dErrors "amlscope/pkg/domain-errors"
)

// SelectRequest is the HTTP request body for POST /catalogue/select.
type SelectRequest struct {
	Key string `json:"key"`

	parsedKey screening.RecordKey
}

// Validate parses the record key.
func (r *SelectRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Key = strings.TrimSpace(r.Key)
	if r.Key == "" {
		return dErrors.New(dErrors.CodeValidation, "key is required")
	}
	key, err := screening.ParseRecordKey(r.Key)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "key must look like <source_file>-<record_index>")
	}
	r.parsedKey = key
	return nil
}

// ParsedKey returns the validated key.
func (r *SelectRequest) ParsedKey() screening.RecordKey {
	return r.parsedKey
}

// AnalyzeRequest is the HTTP request body for POST /catalogue/analyze. An
// empty key analyzes the current selection.
type AnalyzeRequest struct {
	Key string `json:"key"`

	parsedKey *screening.RecordKey
}

// Validate parses the optional record key.
func (r *AnalyzeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Key = strings.TrimSpace(r.Key)
	if r.Key == "" {
		return nil
	}
	key, err := screening.ParseRecordKey(r.Key)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "key must look like <source_file>-<record_index>")
	}
	r.parsedKey = &key
	return nil
}

// ParsedKey returns the validated key, or nil to use the current selection.
func (r *AnalyzeRequest) ParsedKey() *screening.RecordKey {
	return r.parsedKey
}
