package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/services"
	"github.com/shashiranjanraj/recipebox/pkg/bind"
	"github.com/shashiranjanraj/recipebox/pkg/resource"
	"github.com/shashiranjanraj/recipebox/pkg/response"
)

// LabelController serves /api/recipe/tags and /api/recipe/ingredients.
type LabelController[T models.Labeled] struct {
	service *services.LabelService[T]
}

func NewLabelController[T models.Labeled](service *services.LabelService[T]) *LabelController[T] {
	return &LabelController[T]{service: service}
}

func labelResource[T models.Labeled](v T) resource.Map {
	l := v.Base()
	return resource.Map{"id": l.ID, "name": l.Name}
}

func (c *LabelController[T]) Index(w http.ResponseWriter, r *http.Request) {
	req, err := listRequest(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	items, err := c.service.List(r.Context(), req)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, resource.Collection(items, labelResource[T]))
}

func (c *LabelController[T]) Store(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	var in services.LabelInput
	if err := bind.Decode(r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	item, err := c.service.Create(r.Context(), owner, in)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Created(w, resource.Item(item, labelResource[T]))
}

func (c *LabelController[T]) Show(w http.ResponseWriter, r *http.Request) {
	owner, id, err := target(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	item, err := c.service.Get(r.Context(), owner, id)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, resource.Item(item, labelResource[T]))
}

func (c *LabelController[T]) Update(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, false)
}

func (c *LabelController[T]) Patch(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, true)
}

func (c *LabelController[T]) update(w http.ResponseWriter, r *http.Request, partial bool) {
	owner, id, err := target(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	var in services.LabelInput
	if err := bind.Decode(r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	item, err := c.service.Update(r.Context(), owner, id, in, partial)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, resource.Item(item, labelResource[T]))
}

func (c *LabelController[T]) Destroy(w http.ResponseWriter, r *http.Request) {
	owner, id, err := target(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	if err := c.service.Delete(r.Context(), owner, id); err != nil {
		response.Fail(w, r, err)
		return
	}
	response.NoContent(w)
}
