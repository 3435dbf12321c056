package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFetchFailed indicates the page could not be retrieved (network error or non-2xx).
	ErrFetchFailed = errors.New("fetch failed")

	// ErrExtractionTooShort indicates the cleaned text is under the minimum excerpt length.
	ErrExtractionTooShort = errors.New("extracted content is too short, the website might be blocking access")

	// ErrPersistence indicates a repository write failed.
	ErrPersistence = errors.New("persistence failed")

	// ErrNotFound indicates nothing is stored for the URL.
	ErrNotFound = errors.New("analysis not found")

	// ErrInvalidURL indicates the caller supplied a URL the pipeline will not fetch.
	ErrInvalidURL = errors.New("invalid url")

	// ErrResponseValidation indicates the model returned JSON of the wrong shape.
	ErrResponseValidation = errors.New("model response failed validation")
)

// FetchError carries the upstream HTTP status of a failed fetch.
type FetchError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch website: %v", e.Err)
	}
	return fmt.Sprintf("failed to fetch website: %d %s", e.StatusCode, e.Status)
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFetchFailed, e.Err}
	}
	return []error{ErrFetchFailed}
}

// FieldError is a single validation problem.
type FieldError struct {
	Field   string
	Problem string
}

// ValidationError lists every field problem found in one model response.
type ValidationError struct {
	Kind   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Problem)
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrResponseValidation }

func (e *ValidationError) add(field, problem string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Problem: problem})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
