// Package bind decodes and validates HTTP request payloads.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/shashiranjanraj/recipebox/config"
	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/validate"
)

// Decode decodes r.Body as JSON into dest without running validation.
// The body is capped at MAX_BODY_BYTES. An empty body leaves dest untouched.
func Decode(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Field(apperr.NonField, fmt.Sprintf("Request body too large (max %d bytes).", maxErr.Limit))
		}
		return apperr.Field(apperr.NonField, fmt.Sprintf("JSON parse error - %v", err))
	}
	return nil
}

// JSON decodes r.Body into dest and runs struct-tag validation on it.
func JSON(r *http.Request, dest interface{}) error {
	if err := Decode(r, dest); err != nil {
		return err
	}
	return validate.Check(dest)
}

// File reads the single multipart file under field. The whole form is capped at
// MAX_UPLOAD_BYTES. A missing part is reported as a field validation error.
func File(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	limit := config.MaxUploadBytes()
	r.Body = http.MaxBytesReader(nil, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, apperr.Field(field, fmt.Sprintf("The %s may not be greater than %d bytes.", field, maxErr.Limit))
		}
		return nil, nil, apperr.Field(field, "No file was submitted.")
	}

	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, nil, apperr.Field(field, "No file was submitted.")
	}
	return f, hdr, nil
}
