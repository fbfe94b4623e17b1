package services

import (
	"context"
	"fmt"

	"github.com/cacutler/recipearchive/internal/client/client"
	"github.com/cacutler/recipearchive/internal/client/models"
	"github.com/cacutler/recipearchive/internal/client/store"
)

// RecipeService loads and edits recipes and keeps the recipe store in step
// with the server.
type RecipeService interface {
	LoadAll(ctx context.Context) ([]models.Recipe, error)
	LoadByUser(ctx context.Context, userID int64) ([]models.Recipe, error)
	// LoadMine loads the signed-in user's recipes.
	LoadMine(ctx context.Context) ([]models.Recipe, error)
	// Open fetches a recipe and selects it. A nil recipe means the server
	// returned nothing.
	Open(ctx context.Context, id int64) (*models.Recipe, error)
	// Create stores a recipe owned by the signed-in user; req.UserID is
	// overwritten.
	Create(ctx context.Context, req models.RecipeCreate) (*models.Recipe, error)
	Update(ctx context.Context, id int64, upd models.RecipeUpdate) (*models.Recipe, error)
	Delete(ctx context.Context, id int64) error
}

type recipeService struct {
	api     client.Client
	recipes *store.RecipeStore
	auth    *store.AuthStore
}

func NewRecipeService(api client.Client, recipes *store.RecipeStore, auth *store.AuthStore) RecipeService {
	return &recipeService{api: api, recipes: recipes, auth: auth}
}

func (s *recipeService) LoadAll(ctx context.Context) ([]models.Recipe, error) {
	return s.load(func() ([]models.Recipe, error) {
		return s.api.GetAllRecipes(ctx)
	})
}

func (s *recipeService) LoadByUser(ctx context.Context, userID int64) ([]models.Recipe, error) {
	return s.load(func() ([]models.Recipe, error) {
		return s.api.GetUserRecipes(ctx, userID)
	})
}

func (s *recipeService) LoadMine(ctx context.Context) ([]models.Recipe, error) {
	return s.load(func() ([]models.Recipe, error) {
		userID, err := s.currentUserID()
		if err != nil {
			return nil, err
		}
		return s.api.GetUserRecipes(ctx, userID)
	})
}

func (s *recipeService) load(fetch func() ([]models.Recipe, error)) ([]models.Recipe, error) {
	var out []models.Recipe
	err := track(s.recipes, func() error {
		rs, err := fetch()
		if err != nil {
			return err
		}
		s.recipes.SetRecipes(rs)
		out = rs
		return nil
	})
	return out, err
}

func (s *recipeService) Open(ctx context.Context, id int64) (*models.Recipe, error) {
	var out *models.Recipe
	err := track(s.recipes, func() error {
		r, err := s.api.GetRecipeByID(ctx, id)
		if err != nil {
			return err
		}
		s.recipes.SelectRecipe(r)
		out = r
		return nil
	})
	return out, err
}

func (s *recipeService) Create(ctx context.Context, req models.RecipeCreate) (*models.Recipe, error) {
	var out *models.Recipe
	err := track(s.recipes, func() error {
		userID, err := s.currentUserID()
		if err != nil {
			return err
		}
		req.UserID = userID
		if err := validateInput(req); err != nil {
			return err
		}

		r, err := s.api.CreateRecipe(ctx, req)
		if err != nil {
			return err
		}
		if r != nil {
			s.recipes.AddRecipe(*r)
		}
		out = r
		return nil
	})
	return out, err
}

// Update sends upd and merges the server's answer into the store. When the
// server answers without a body the local patch is merged instead.
func (s *recipeService) Update(ctx context.Context, id int64, upd models.RecipeUpdate) (*models.Recipe, error) {
	var out *models.Recipe
	err := track(s.recipes, func() error {
		if upd.IsEmpty() {
			return fmt.Errorf("%w: nothing to update", ErrValidation)
		}
		if err := validateInput(upd); err != nil {
			return err
		}

		r, err := s.api.UpdateRecipe(ctx, id, upd)
		if err != nil {
			return err
		}
		if r != nil {
			s.recipes.UpdateRecipe(id, models.RecipeUpdateFrom(*r))
		} else {
			s.recipes.UpdateRecipe(id, upd)
		}
		out = r
		return nil
	})
	return out, err
}

func (s *recipeService) Delete(ctx context.Context, id int64) error {
	return track(s.recipes, func() error {
		if err := s.api.DeleteRecipe(ctx, id); err != nil {
			return err
		}
		s.recipes.DeleteRecipe(id)
		return nil
	})
}

func (s *recipeService) currentUserID() (int64, error) {
	st := s.auth.Get()
	if !st.IsAuthenticated || st.User == nil {
		return 0, ErrNotSignedIn
	}
	return st.User.ID, nil
}
