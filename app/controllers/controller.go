package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/recipebox/app/filters"
	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/middleware"
)

// ownerID is the authenticated requester. Routes using it sit behind
// middleware.Authenticate, so a missing ID is a wiring error.
func ownerID(r *http.Request) (uint, error) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return 0, apperr.ErrUnauthorized
	}
	return id, nil
}

// pathID parses the {id} URL parameter. Anything that is not an ID cannot
// name a row, so it is reported as not found.
func pathID(r *http.Request) (uint, error) {
	n, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil || n == 0 {
		return 0, apperr.ErrNotFound
	}
	return uint(n), nil
}

// target resolves both the requester and the {id} parameter.
func target(r *http.Request) (owner, id uint, err error) {
	if owner, err = ownerID(r); err != nil {
		return 0, 0, err
	}
	id, err = pathID(r)
	return owner, id, err
}

func listRequest(r *http.Request) (filters.Request, error) {
	owner, err := ownerID(r)
	if err != nil {
		return filters.Request{}, err
	}
	return filters.Request{OwnerID: owner, Query: r.URL.Query()}, nil
}
