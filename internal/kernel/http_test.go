package kernel_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/services"
	"github.com/shashiranjanraj/recipebox/internal/kernel"
	"github.com/shashiranjanraj/recipebox/pkg/auth"
	"github.com/shashiranjanraj/recipebox/pkg/storage"
	"github.com/shashiranjanraj/recipebox/pkg/testkit"
)

const storageURL = "http://testserver/storage"

type env struct {
	db     *gorm.DB
	disk   *storage.LocalDisk
	kernel *kernel.HTTPKernel
}

func setup(t *testing.T) *env {
	t.Helper()

	db := testkit.DB(t)
	disk, err := storage.NewLocal(t.TempDir(), storageURL)
	require.NoError(t, err)

	disks := storage.NewManager("local")
	disks.Register("local", disk)

	k, err := kernel.NewHTTPKernel(kernel.Deps{DB: db, Disks: disks})
	require.NoError(t, err)
	return &env{db: db, disk: disk, kernel: k}
}

func (e *env) anonymous() *testkit.Client {
	return &testkit.Client{Handler: e.kernel.Handler()}
}

func (e *env) as(t *testing.T, u *models.User) *testkit.Client {
	t.Helper()
	token, err := auth.GenerateToken(u.ID)
	require.NoError(t, err)
	return &testkit.Client{Handler: e.kernel.Handler(), Token: token}
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func upload(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func storedFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestAnonymousRequestsAreRejected(t *testing.T) {
	e := setup(t)
	c := e.anonymous()

	for _, path := range []string{"/api/recipe/tags", "/api/recipe/ingredients", "/api/recipe/recipes", "/api/user/profile"} {
		res := c.JSON(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, path)
	}
	for _, path := range []string{"/api/recipe/tags", "/api/recipe/ingredients", "/api/recipe/recipes"} {
		res := c.JSON(t, http.MethodPost, path, map[string]string{"name": "Vegan", "title": "Soup", "price": "1.00"})
		assert.Equal(t, http.StatusUnauthorized, res.Code, path)
	}

	var n int64
	require.NoError(t, e.db.Model(&models.Tag{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestListOrdering(t *testing.T) {
	e := setup(t)
	u := testkit.User(t, e.db, "test@example.com")
	c := e.as(t, u)

	for _, path := range []string{"/api/recipe/tags", "/api/recipe/ingredients"} {
		for _, name := range []string{"Apple", "Zucchini", "Mango"} {
			res := c.JSON(t, http.MethodPost, path, map[string]string{"name": name})
			require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
		}

		res := c.JSON(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, res.Code)
		var list []struct {
			Name string `json:"name"`
		}
		res.Decode(t, &list)
		var names []string
		for _, l := range list {
			names = append(names, l.Name)
		}
		assert.Equal(t, []string{"Zucchini", "Mango", "Apple"}, names, path)
	}

	r1 := testkit.Recipe(t, e.db, u.ID, "r1", nil, nil)
	r2 := testkit.Recipe(t, e.db, u.ID, "r2", nil, nil)

	res := c.JSON(t, http.MethodGet, "/api/recipe/recipes", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var recipes []struct {
		ID uint `json:"id"`
	}
	res.Decode(t, &recipes)
	require.Len(t, recipes, 2)
	assert.Equal(t, []uint{r2.ID, r1.ID}, []uint{recipes[0].ID, recipes[1].ID})
}

func TestCreateUser(t *testing.T) {
	e := setup(t)
	c := e.anonymous()

	res := c.JSON(t, http.MethodPost, "/api/user/create", map[string]string{
		"email": "test@example.com", "password": "testpass", "name": "Test name",
	})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))

	var body map[string]interface{}
	res.Decode(t, &body)
	assert.Equal(t, "test@example.com", body["email"])
	assert.NotContains(t, body, "password")

	res = c.JSON(t, http.MethodPost, "/api/user/create", map[string]string{
		"email": "test@example.com", "password": "testpass", "name": "Again",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, []string{"user with this email already exists."}, res.Errors["email"])
}

func TestCreateUserShortPassword(t *testing.T) {
	e := setup(t)

	res := e.anonymous().JSON(t, http.MethodPost, "/api/user/create", map[string]string{
		"email": "test@example.com", "password": "pw", "name": "Test name",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.NotEmpty(t, res.Errors["password"])

	var n int64
	require.NoError(t, e.db.Model(&models.User{}).Where("email = ?", "test@example.com").Count(&n).Error)
	assert.Zero(t, n)
}

func TestToken(t *testing.T) {
	e := setup(t)
	testkit.User(t, e.db, "test@example.com")
	c := e.anonymous()

	res := c.JSON(t, http.MethodPost, "/api/user/token", map[string]string{
		"email": "test@example.com", "password": "testpass",
	})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	var body struct {
		Token string `json:"token"`
	}
	res.Decode(t, &body)
	assert.NotEmpty(t, body.Token)

	for _, creds := range []map[string]string{
		{"email": "test@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "testpass"},
	} {
		res = c.JSON(t, http.MethodPost, "/api/user/token", creds)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.Equal(t, []string{services.AuthFailed}, res.Errors["non_field_errors"])
	}

	res = c.JSON(t, http.MethodPost, "/api/user/token", map[string]string{"email": "test@example.com", "password": ""})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.NotEmpty(t, res.Errors["password"])
}

func TestProfile(t *testing.T) {
	e := setup(t)
	u := testkit.User(t, e.db, "test@example.com")
	c := e.as(t, u)

	res := c.JSON(t, http.MethodGet, "/api/user/profile", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"email":"test@example.com","name":"Test name"}`, string(res.Data))

	res = c.JSON(t, http.MethodPost, "/api/user/profile", map[string]string{})
	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)

	res = c.JSON(t, http.MethodPatch, "/api/user/profile", map[string]string{"name": "New name", "password": "newpassword"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))

	var fresh models.User
	require.NoError(t, e.db.First(&fresh, u.ID).Error)
	assert.Equal(t, "New name", fresh.Name)
	assert.True(t, fresh.CheckPassword("newpassword"))
}

func TestTagLifecycle(t *testing.T) {
	e := setup(t)
	u := testkit.User(t, e.db, "test@example.com")
	other := testkit.User(t, e.db, "other@example.com")
	testkit.Tag(t, e.db, other.ID, "Theirs")
	c := e.as(t, u)

	res := c.JSON(t, http.MethodPost, "/api/recipe/tags", map[string]string{"name": "Vegan"})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	var created struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	res.Decode(t, &created)
	assert.Equal(t, "Vegan", created.Name)

	res = c.JSON(t, http.MethodGet, "/api/recipe/tags", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var list []struct {
		Name string `json:"name"`
	}
	res.Decode(t, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Vegan", list[0].Name)

	res = c.JSON(t, http.MethodPost, "/api/recipe/tags", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = c.JSON(t, http.MethodDelete, "/api/recipe/tags/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestFullUpdateClearsLabels(t *testing.T) {
	e := setup(t)
	u := testkit.User(t, e.db, "test@example.com")
	tag := testkit.Tag(t, e.db, u.ID, "Vegan")
	ing := testkit.Ingredient(t, e.db, u.ID, "Salt")
	recipe := testkit.Recipe(t, e.db, u.ID, "Soup", []models.Tag{tag}, []models.Ingredient{ing})
	c := e.as(t, u)

	res := c.JSON(t, http.MethodPut, "/api/recipe/recipes/"+itoa(recipe.ID), map[string]interface{}{
		"title": "Kingy", "price": "5.99",
	})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))

	var body struct {
		Title       string `json:"title"`
		Price       string `json:"price"`
		Tags        []uint `json:"tags"`
		Ingredients []uint `json:"ingredients"`
	}
	res.Decode(t, &body)
	assert.Equal(t, "Kingy", body.Title)
	assert.Equal(t, "5.99", body.Price)
	assert.Empty(t, body.Tags)
	assert.Empty(t, body.Ingredients)

	var links int64
	require.NoError(t, e.db.Table("recipe_tags").Where("recipe_id = ?", recipe.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestRecipeRejectsForeignLabels(t *testing.T) {
	e := setup(t)
	u := testkit.User(t, e.db, "test@example.com")
	other := testkit.User(t, e.db, "other@example.com")
	theirs := testkit.Tag(t, e.db, other.ID, "Theirs")
	c := e.as(t, u)

	res := c.JSON(t, http.MethodPost, "/api/recipe/recipes", map[string]interface{}{
		"title": "Soup", "price": "1.00", "tags": []uint{theirs.ID},
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.NotEmpty(t, res.Errors["tags"])

	var n int64
	require.NoError(t, e.db.Model(&models.Recipe{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestForeignRecipeIsNotFound(t *testing.T) {
	e := setup(t)
	u := testkit.User(t, e.db, "test@example.com")
	other := testkit.User(t, e.db, "other@example.com")
	theirs := testkit.Recipe(t, e.db, other.ID, "Theirs", nil, nil)
	c := e.as(t, u)

	path := "/api/recipe/recipes/" + itoa(theirs.ID)
	assert.Equal(t, http.StatusNotFound, c.JSON(t, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.JSON(t, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.Do(t, upload(t, path+"/upload-image", "a.jpg", jpegBytes(t))).Code)
	assert.Empty(t, storedFiles(t, e.disk.Root()))
}

func TestUploadImage(t *testing.T) {
	e := setup(t)
	u := testkit.User(t, e.db, "test@example.com")
	recipe := testkit.Recipe(t, e.db, u.ID, "Soup", nil, nil)
	c := e.as(t, u)
	path := "/api/recipe/recipes/" + itoa(recipe.ID) + "/upload-image"

	res := c.Do(t, upload(t, path, "Photo.JPG", jpegBytes(t)))
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))

	var body struct {
		ID    uint   `json:"id"`
		Image string `json:"image"`
	}
	res.Decode(t, &body)
	assert.Equal(t, recipe.ID, body.ID)
	assert.True(t, strings.HasPrefix(body.Image, storageURL+"/uploads/recipe/"), body.Image)
	assert.True(t, strings.HasSuffix(body.Image, ".jpg"), body.Image)
	first := storedFiles(t, e.disk.Root())
	require.Len(t, first, 1)

	res = c.Do(t, upload(t, path, "again.jpg", jpegBytes(t)))
	require.Equal(t, http.StatusOK, res.Code)
	second := storedFiles(t, e.disk.Root())
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0], second[0])
}

func TestUploadRejectsBadImages(t *testing.T) {
	e := setup(t)
	u := testkit.User(t, e.db, "test@example.com")
	recipe := testkit.Recipe(t, e.db, u.ID, "Soup", nil, nil)
	c := e.as(t, u)
	path := "/api/recipe/recipes/" + itoa(recipe.ID) + "/upload-image"

	res := c.Do(t, upload(t, path, "empty.jpg", nil))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, []string{"The submitted file is empty."}, res.Errors["image"])

	res = c.Do(t, upload(t, path, "notimage.jpg", []byte("notimage")))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.NotEmpty(t, res.Errors["image"])

	assert.Empty(t, storedFiles(t, e.disk.Root()))

	var fresh models.Recipe
	require.NoError(t, e.db.First(&fresh, recipe.ID).Error)
	assert.Empty(t, fresh.Image)
}

func TestHealthAndRoutes(t *testing.T) {
	e := setup(t)

	res := e.anonymous().JSON(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = e.anonymous().JSON(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	names := map[string]bool{}
	for _, ri := range e.kernel.Routes() {
		names[ri.Name] = true
	}
	for _, n := range []string{"user.create", "user.token", "tags.index", "ingredients.destroy", "recipes.upload_image", "metrics", "storage"} {
		assert.True(t, names[n], n)
	}
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
