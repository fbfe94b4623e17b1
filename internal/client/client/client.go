package client

import (
	"context"

	"github.com/cacutler/recipearchive/internal/client/models"
)

// Client is the typed contract of the RecipeArchive REST API.
//
// User mutations, GetUser and recipe mutations are authenticated: they carry
// the persisted credential when there is one. Without one the request still
// goes out and the server decides.
type Client interface {
	// Login authenticates and, on success, persists the returned token.
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	// Logout forgets the persisted credential. It makes no request.
	Logout(ctx context.Context)

	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	GetAllRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipeByID(ctx context.Context, id int64) (*models.Recipe, error)
	GetUserRecipes(ctx context.Context, userID int64) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, req models.RecipeCreate) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, upd models.RecipeUpdate) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
}
