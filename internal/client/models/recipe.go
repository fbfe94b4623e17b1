package models

import "github.com/cacutler/recipearchive/internal/timex"

// Recipe as served by the backend. Ingredients and Instructions are opaque
// text blobs.
type Recipe struct {
	ID           int64            `json:"id"`
	UserID       int64            `json:"userId"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Ingredients  string           `json:"ingredients"`
	Instructions string           `json:"instructions"`
	Allergies    *string          `json:"allergies,omitempty"`
	PrepTime     *int             `json:"prepTime,omitempty"`
	CookingTime  *int             `json:"cookingTime,omitempty"`
	Servings     *int             `json:"servings,omitempty"`
	CreatedAt    *timex.Timestamp `json:"createdAt,omitempty"`
	UpdatedAt    *timex.Timestamp `json:"updatedAt,omitempty"`
}

// RecipeCreate is the body of POST /recipes.
type RecipeCreate struct {
	UserID       int64   `json:"userId" validate:"required,gt=0"`
	Title        string  `json:"title" validate:"required,notblank"`
	Description  string  `json:"description"`
	Ingredients  string  `json:"ingredients" validate:"required,notblank"`
	Instructions string  `json:"instructions" validate:"required,notblank"`
	Allergies    *string `json:"allergies,omitempty"`
	PrepTime     *int    `json:"prepTime,omitempty" validate:"omitempty,gt=0"`
	CookingTime  *int    `json:"cookingTime,omitempty" validate:"omitempty,gt=0"`
	Servings     *int    `json:"servings,omitempty" validate:"omitempty,gt=0"`
}

// RecipeUpdate is a partial recipe: the body of PUT /recipes/{id} and the
// patch merged by the recipe store. UpdatedAt is never sent; it lets the
// store pick up the server's modification time.
type RecipeUpdate struct {
	Title        *string          `json:"title,omitempty" validate:"omitempty,notblank"`
	Description  *string          `json:"description,omitempty"`
	Ingredients  *string          `json:"ingredients,omitempty" validate:"omitempty,notblank"`
	Instructions *string          `json:"instructions,omitempty" validate:"omitempty,notblank"`
	Allergies    *string          `json:"allergies,omitempty"`
	PrepTime     *int             `json:"prepTime,omitempty" validate:"omitempty,gt=0"`
	CookingTime  *int             `json:"cookingTime,omitempty" validate:"omitempty,gt=0"`
	Servings     *int             `json:"servings,omitempty" validate:"omitempty,gt=0"`
	UpdatedAt    *timex.Timestamp `json:"-" validate:"-"`
}

// IsEmpty reports whether the patch sets nothing.
func (u RecipeUpdate) IsEmpty() bool {
	return u == RecipeUpdate{}
}

// Apply returns a copy of r with every set field of u merged in. Id, UserID
// and CreatedAt are never touched.
func (u RecipeUpdate) Apply(r Recipe) Recipe {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Ingredients != nil {
		r.Ingredients = *u.Ingredients
	}
	if u.Instructions != nil {
		r.Instructions = *u.Instructions
	}
	if u.Allergies != nil {
		r.Allergies = Ptr(*u.Allergies)
	}
	if u.PrepTime != nil {
		r.PrepTime = Ptr(*u.PrepTime)
	}
	if u.CookingTime != nil {
		r.CookingTime = Ptr(*u.CookingTime)
	}
	if u.Servings != nil {
		r.Servings = Ptr(*u.Servings)
	}
	if u.UpdatedAt != nil {
		r.UpdatedAt = timex.NewTimestamp(u.UpdatedAt.Time)
	}
	return r
}

// RecipeUpdateFrom builds a patch carrying every mutable field of r, used to
// merge a server response into local state.
func RecipeUpdateFrom(r Recipe) RecipeUpdate {
	return RecipeUpdate{
		Title:        Ptr(r.Title),
		Description:  Ptr(r.Description),
		Ingredients:  Ptr(r.Ingredients),
		Instructions: Ptr(r.Instructions),
		Allergies:    r.Allergies,
		PrepTime:     r.PrepTime,
		CookingTime:  r.CookingTime,
		Servings:     r.Servings,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
