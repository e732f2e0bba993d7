package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/services"
	"github.com/shashiranjanraj/recipebox/pkg/bind"
	"github.com/shashiranjanraj/recipebox/pkg/resource"
	"github.com/shashiranjanraj/recipebox/pkg/response"
)

type RecipeController struct {
	recipes *services.RecipeService
	images  *services.ImageService
}

func NewRecipeController(recipes *services.RecipeService, images *services.ImageService) *RecipeController {
	return &RecipeController{recipes: recipes, images: images}
}

func (c *RecipeController) imageURL(p string) interface{} {
	if p == "" {
		return nil
	}
	return c.images.URL(p)
}

// recipeResource is the list shape: tags and ingredients as ID lists.
func (c *RecipeController) recipeResource(rc models.Recipe) resource.Map {
	return resource.Map{
		"id":          rc.ID,
		"title":       rc.Title,
		"price":       rc.Price.StringFixed(2),
		"tags":        rc.TagIDs(),
		"ingredients": rc.IngredientIDs(),
		"image":       c.imageURL(rc.Image),
	}
}

// recipeDetail nests the tag and ingredient objects.
func (c *RecipeController) recipeDetail(rc models.Recipe) resource.Map {
	out := c.recipeResource(rc)
	out["tags"] = resource.Collection(rc.Tags, labelResource[models.Tag])
	out["ingredients"] = resource.Collection(rc.Ingredients, labelResource[models.Ingredient])
	return out
}

func (c *RecipeController) Index(w http.ResponseWriter, r *http.Request) {
	req, err := listRequest(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	recipes, err := c.recipes.List(r.Context(), req)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, resource.Collection(recipes, c.recipeResource))
}

func (c *RecipeController) Store(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	var in services.RecipeInput
	if err := bind.Decode(r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	recipe, err := c.recipes.Create(r.Context(), owner, in)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Created(w, resource.Item(*recipe, c.recipeResource))
}

func (c *RecipeController) Show(w http.ResponseWriter, r *http.Request) {
	owner, id, err := target(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	recipe, err := c.recipes.Get(r.Context(), owner, id)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, resource.Item(*recipe, c.recipeDetail))
}

func (c *RecipeController) Update(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, false)
}

func (c *RecipeController) Patch(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, true)
}

func (c *RecipeController) update(w http.ResponseWriter, r *http.Request, partial bool) {
	owner, id, err := target(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	var in services.RecipeInput
	if err := bind.Decode(r, &in); err != nil {
		response.Fail(w, r, err)
		return
	}

	recipe, err := c.recipes.Update(r.Context(), owner, id, in, partial)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, resource.Item(*recipe, c.recipeResource))
}

func (c *RecipeController) Destroy(w http.ResponseWriter, r *http.Request) {
	owner, id, err := target(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	if err := c.recipes.Delete(r.Context(), owner, id); err != nil {
		response.Fail(w, r, err)
		return
	}
	response.NoContent(w)
}

// UploadImage handles POST /api/recipe/recipes/{id}/upload-image with a
// multipart "image" field.
func (c *RecipeController) UploadImage(w http.ResponseWriter, r *http.Request) {
	owner, id, err := target(r)
	if err != nil {
		response.Fail(w, r, err)
		return
	}

	file, hdr, err := bind.File(r, "image")
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	defer file.Close()

	recipe, err := c.images.Upload(r.Context(), owner, id, hdr.Filename, file)
	if err != nil {
		response.Fail(w, r, err)
		return
	}
	response.Success(w, resource.Map{"id": recipe.ID, "image": c.imageURL(recipe.Image)})
}
