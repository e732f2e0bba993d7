package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/services"
	"github.com/shashiranjanraj/recipebox/pkg/bind"
	"github.com/shashiranjanraj/recipebox/pkg/resource"
	"github.com/shashiranjanraj/recipebox/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func userResource(u *models.User) resource.Map {
	return resource.Map{"email": u.Email, "name": u.Name}
}

// Create handles POST /api/user/create.
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateUserInput
	if err := bind.Decode(r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	u, err := c.service.Create(r.Context(), in)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Created(w, userResource(u))
}

// Token handles POST /api/user/token.
func (c *UserController) Token(w http.ResponseWriter, r *http.Request) {
	var in services.TokenInput
	if err := bind.Decode(r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	token, err := c.service.Token(r.Context(), in)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, resource.Map{"token": token})
}

// Profile handles GET /api/user/profile.
func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := ownerID(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	u, err := c.service.Profile(r.Context(), id)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, userResource(u))
}

// Update handles PUT /api/user/profile.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, false)
}

// Patch handles PATCH /api/user/profile.
func (c *UserController) Patch(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, true)
}

func (c *UserController) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, err := ownerID(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	var in services.ProfileInput
	if err := bind.Decode(r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	u, err := c.service.UpdateProfile(r.Context(), id, in, partial)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, userResource(u))
}
