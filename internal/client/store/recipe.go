package store

import (
	"slices"

	"github.com/cacutler/recipearchive/internal/client/models"
)

// RecipeState is a snapshot of the recipe collection and the recipe being
// viewed.
type RecipeState struct {
	Recipes        []models.Recipe
	SelectedRecipe *models.Recipe
	Loading        bool
	Error          *string
}

// RecipeStore publishes recipe state. Every mutation builds a new slice and
// new pointers; published snapshots are never modified.
type RecipeStore struct {
	v *Value[RecipeState]
}

func NewRecipeStore() *RecipeStore {
	return &RecipeStore{v: NewValue(RecipeState{Recipes: []models.Recipe{}})}
}

// Subscribe delivers the current state, then every change.
func (s *RecipeStore) Subscribe(fn Listener[RecipeState]) func() {
	return s.v.Subscribe(fn)
}

func (s *RecipeStore) Get() RecipeState {
	return s.v.Get()
}

// SetRecipes replaces the whole collection.
func (s *RecipeStore) SetRecipes(recipes []models.Recipe) {
	next := slices.Clone(recipes)
	if next == nil {
		next = []models.Recipe{}
	}
	s.v.Update(func(st RecipeState) RecipeState {
		st.Recipes = next
		return st
	})
}

// SelectRecipe sets the selected recipe; nil clears the selection.
func (s *RecipeStore) SelectRecipe(r *models.Recipe) {
	var sel *models.Recipe
	if r != nil {
		c := *r
		sel = &c
	}
	s.v.Update(func(st RecipeState) RecipeState {
		st.SelectedRecipe = sel
		return st
	})
}

// AddRecipe puts r first in the collection.
func (s *RecipeStore) AddRecipe(r models.Recipe) {
	s.v.Update(func(st RecipeState) RecipeState {
		next := make([]models.Recipe, 0, len(st.Recipes)+1)
		next = append(next, r)
		st.Recipes = append(next, st.Recipes...)
		return st
	})
}

// UpdateRecipe merges upd into the recipe with the given id, both in the
// collection and in the selection. Unknown ids leave the state unchanged,
// but subscribers are still notified.
func (s *RecipeStore) UpdateRecipe(id int64, upd models.RecipeUpdate) {
	s.v.Update(func(st RecipeState) RecipeState {
		next := make([]models.Recipe, len(st.Recipes))
		for i, r := range st.Recipes {
			if r.ID == id {
				r = upd.Apply(r)
			}
			next[i] = r
		}
		st.Recipes = next

		if st.SelectedRecipe != nil && st.SelectedRecipe.ID == id {
			merged := upd.Apply(*st.SelectedRecipe)
			st.SelectedRecipe = &merged
		}
		return st
	})
}

// DeleteRecipe removes the recipe with the given id and clears the selection
// if it was that recipe.
func (s *RecipeStore) DeleteRecipe(id int64) {
	s.v.Update(func(st RecipeState) RecipeState {
		next := make([]models.Recipe, 0, len(st.Recipes))
		for _, r := range st.Recipes {
			if r.ID != id {
				next = append(next, r)
			}
		}
		st.Recipes = next

		if st.SelectedRecipe != nil && st.SelectedRecipe.ID == id {
			st.SelectedRecipe = nil
		}
		return st
	})
}

func (s *RecipeStore) SetLoading(loading bool) {
	s.v.Update(func(st RecipeState) RecipeState {
		st.Loading = loading
		return st
	})
}

// SetError records msg; nil clears the error.
func (s *RecipeStore) SetError(msg *string) {
	s.v.Update(func(st RecipeState) RecipeState {
		st.Error = copyString(msg)
		return st
	})
}
