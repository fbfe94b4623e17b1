package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cacutler/recipearchive/internal/client/models"
	"github.com/cacutler/recipearchive/internal/client/session"
	"github.com/cacutler/recipearchive/internal/client/store"
	"github.com/cacutler/recipearchive/internal/logging"
)

// fakeAuthService mimics the real service's store effects.
type fakeAuthService struct {
	auth *store.AuthStore

	user     models.User
	loginErr error
	restored bool

	signupReq  models.SignupRequest
	signupErr  error
	loginUser  string
	loginPass  string
	lastUpdate models.UserUpdate
	updateErr  error
	deleted    bool
	claims     *session.Claims
}

func (f *fakeAuthService) fail(err error) error {
	msg := err.Error()
	f.auth.SetError(&msg)
	return err
}

func (f *fakeAuthService) Signup(_ context.Context, req models.SignupRequest) (*models.User, error) {
	f.signupReq = req
	if f.signupErr != nil {
		return nil, f.fail(f.signupErr)
	}
	return &models.User{ID: 1, Username: req.Username}, nil
}

func (f *fakeAuthService) Login(_ context.Context, username, password string) (*models.User, error) {
	f.loginUser, f.loginPass = username, password
	if f.loginErr != nil {
		return nil, f.fail(f.loginErr)
	}
	u := f.user
	u.Username = username
	f.auth.SetUser(u, "tok")
	return &u, nil
}

func (f *fakeAuthService) Logout(context.Context) { f.auth.ClearAuth() }

func (f *fakeAuthService) Restore(context.Context) (bool, error) {
	if f.restored {
		f.auth.SetUser(f.user, "tok")
	}
	return f.restored, nil
}

func (f *fakeAuthService) UpdateProfile(_ context.Context, upd models.UserUpdate) (*models.User, error) {
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.fail(f.updateErr)
	}
	u := upd.Apply(*f.auth.Get().User)
	f.auth.UpdateUser(u)
	return &u, nil
}

func (f *fakeAuthService) DeleteAccount(context.Context) error {
	f.deleted = true
	f.auth.ClearAuth()
	return nil
}

func (f *fakeAuthService) Session(context.Context) (*session.Claims, error) {
	if f.claims == nil {
		return nil, io.EOF
	}
	return f.claims, nil
}

type fakeRecipeService struct {
	recipes *store.RecipeStore

	all     []models.Recipe
	byID    map[int64]models.Recipe
	loadErr error

	lastUser   int64
	created    *models.RecipeCreate
	updatedID  int64
	lastUpdate *models.RecipeUpdate
	deletedID  int64
}

func (f *fakeRecipeService) load(rs []models.Recipe) ([]models.Recipe, error) {
	if f.loadErr != nil {
		msg := f.loadErr.Error()
		f.recipes.SetError(&msg)
		return nil, f.loadErr
	}
	f.recipes.SetRecipes(rs)
	return rs, nil
}

func (f *fakeRecipeService) LoadAll(context.Context) ([]models.Recipe, error) {
	return f.load(f.all)
}

func (f *fakeRecipeService) LoadByUser(_ context.Context, userID int64) ([]models.Recipe, error) {
	f.lastUser = userID
	return f.load(f.all)
}

func (f *fakeRecipeService) LoadMine(context.Context) ([]models.Recipe, error) {
	return f.load(f.all)
}

func (f *fakeRecipeService) Open(_ context.Context, id int64) (*models.Recipe, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	f.recipes.SelectRecipe(&r)
	return &r, nil
}

func (f *fakeRecipeService) Create(_ context.Context, req models.RecipeCreate) (*models.Recipe, error) {
	f.created = &req
	r := models.Recipe{ID: 100, Title: req.Title}
	f.recipes.AddRecipe(r)
	return &r, nil
}

func (f *fakeRecipeService) Update(_ context.Context, id int64, upd models.RecipeUpdate) (*models.Recipe, error) {
	f.updatedID = id
	f.lastUpdate = &upd
	f.recipes.UpdateRecipe(id, upd)
	return nil, nil
}

func (f *fakeRecipeService) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	f.recipes.DeleteRecipe(id)
	return nil
}

type testApp struct {
	*App
	as  *fakeAuthService
	rs  *fakeRecipeService
	out *bytes.Buffer
}

// newTestApp builds an App whose terminal input is the given lines.
func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	auth := store.NewAuthStore()
	recipes := store.NewRecipeStore()
	as := &fakeAuthService{auth: auth, user: models.User{ID: 7, FirstName: "Alice", Username: "alice"}}
	rs := &fakeRecipeService{recipes: recipes, byID: map[int64]models.Recipe{}}
	out := &bytes.Buffer{}

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	a := newApp(as, rs, auth, recipes, logging.Discard(), in, out)
	t.Cleanup(func() { _ = a.Close() })

	return &testApp{App: a, as: as, rs: rs, out: out}
}

// stubInputs replaces the prompt helpers used for credentials.
func stubInputs(t *testing.T, answers []string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(string, io.Writer) ([]byte, error) { return []byte(password), nil }
}
