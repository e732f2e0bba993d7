package routes

import (
	"github.com/shashiranjanraj/recipebox/app/controllers"
	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/pkg/router"
)

// Controllers bundles every API controller.
type Controllers struct {
	Users       *controllers.UserController
	Tags        *controllers.LabelController[models.Tag]
	Ingredients *controllers.LabelController[models.Ingredient]
	Recipes     *controllers.RecipeController
}

// RegisterAPI mounts the /api routes. authenticate guards everything except
// account creation and token exchange.
func RegisterAPI(r *router.Router, c Controllers, authenticate router.Middleware) {
	api := r.Group("/api")

	user := api.Group("/user")
	user.Post("/create", "user.create", c.Users.Create)
	user.Post("/token", "user.token", c.Users.Token)
	user.Get("/profile", "user.profile", c.Users.Profile, authenticate)
	user.Put("/profile", "user.profile.update", c.Users.Update, authenticate)
	user.Patch("/profile", "user.profile.patch", c.Users.Patch, authenticate)

	recipe := api.Group("/recipe", authenticate)
	labels(recipe, "tags", c.Tags)
	labels(recipe, "ingredients", c.Ingredients)

	recipe.Get("/recipes", "recipes.index", c.Recipes.Index)
	recipe.Post("/recipes", "recipes.store", c.Recipes.Store)
	recipe.Get("/recipes/{id}", "recipes.show", c.Recipes.Show)
	recipe.Put("/recipes/{id}", "recipes.update", c.Recipes.Update)
	recipe.Patch("/recipes/{id}", "recipes.patch", c.Recipes.Patch)
	recipe.Delete("/recipes/{id}", "recipes.destroy", c.Recipes.Destroy)
	recipe.Post("/recipes/{id}/upload-image", "recipes.upload_image", c.Recipes.UploadImage)
}

func labels[T models.Labeled](g *router.Group, name string, c *controllers.LabelController[T]) {
	g.Get("/"+name, name+".index", c.Index)
	g.Post("/"+name, name+".store", c.Store)
	g.Get("/"+name+"/{id}", name+".show", c.Show)
	g.Put("/"+name+"/{id}", name+".update", c.Update)
	g.Patch("/"+name+"/{id}", name+".patch", c.Patch)
	g.Delete("/"+name+"/{id}", name+".destroy", c.Destroy)
}
