package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/cacutler/recipearchive/internal/client/client"
	"github.com/cacutler/recipearchive/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, client.RunMigrations(context.Background(), db, nil))
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) (string, bool) {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false
	}
	require.NoError(t, err)
	return string(v), true
}

func putMeta(t *testing.T, db *sql.DB, k, v string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, []byte(v))
	require.NoError(t, err)
}

func makeToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

// ---- fake client ----

// fakeClient implements client.Client. Login writes its token into tokens
// the way the HTTP client does.
type fakeClient struct {
	tokens client.TokenStore

	LoginResp *models.LoginResponse
	LoginErr  error

	SignupResp *models.User
	SignupErr  error

	Users      map[int64]models.User
	GetUserErr error

	UpdateUserResp *models.User
	UpdateUserErr  error
	DeleteUserErr  error

	Recipes    []models.Recipe
	RecipesErr error
	RecipeResp *models.Recipe
	RecipeErr  error
	CreateResp *models.Recipe
	CreateErr  error
	UpdateResp *models.Recipe
	UpdateErr  error
	DeleteErr  error

	// captured arguments
	Calls          []string
	LastSignup     models.SignupRequest
	LastUserUpdate models.UserUpdate
	LastCreate     models.RecipeCreate
	LastUpdate     models.RecipeUpdate
	LastID         int64
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	f.Calls = append(f.Calls, "Login")
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginResp != nil && f.LoginResp.Token != "" {
		_ = f.tokens.Set(ctx, f.LoginResp.Token)
	}
	return f.LoginResp, nil
}

func (f *fakeClient) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	f.Calls = append(f.Calls, "Signup")
	f.LastSignup = req
	return f.SignupResp, f.SignupErr
}

func (f *fakeClient) Logout(ctx context.Context) {
	f.Calls = append(f.Calls, "Logout")
	f.tokens.Remove(ctx)
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	f.Calls = append(f.Calls, "GetUser")
	f.LastID = id
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	u, ok := f.Users[id]
	if !ok {
		return nil, &client.APIError{StatusCode: 404, Message: "User not found"}
	}
	return &u, nil
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	f.Calls = append(f.Calls, "UpdateUser")
	f.LastID = id
	f.LastUserUpdate = upd
	return f.UpdateUserResp, f.UpdateUserErr
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	f.Calls = append(f.Calls, "DeleteUser")
	f.LastID = id
	return f.DeleteUserErr
}

func (f *fakeClient) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	f.Calls = append(f.Calls, "GetAllRecipes")
	return f.Recipes, f.RecipesErr
}

func (f *fakeClient) GetRecipeByID(ctx context.Context, id int64) (*models.Recipe, error) {
	f.Calls = append(f.Calls, "GetRecipeByID")
	f.LastID = id
	return f.RecipeResp, f.RecipeErr
}

func (f *fakeClient) GetUserRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	f.Calls = append(f.Calls, "GetUserRecipes")
	f.LastID = userID
	return f.Recipes, f.RecipesErr
}

func (f *fakeClient) CreateRecipe(ctx context.Context, req models.RecipeCreate) (*models.Recipe, error) {
	f.Calls = append(f.Calls, "CreateRecipe")
	f.LastCreate = req
	return f.CreateResp, f.CreateErr
}

func (f *fakeClient) UpdateRecipe(ctx context.Context, id int64, upd models.RecipeUpdate) (*models.Recipe, error) {
	f.Calls = append(f.Calls, "UpdateRecipe")
	f.LastID = id
	f.LastUpdate = upd
	return f.UpdateResp, f.UpdateErr
}

func (f *fakeClient) DeleteRecipe(ctx context.Context, id int64) error {
	f.Calls = append(f.Calls, "DeleteRecipe")
	f.LastID = id
	return f.DeleteErr
}
