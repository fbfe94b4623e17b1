package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/cacutler/recipearchive/internal/client/models"
)

func (a *App) List(ctx context.Context) error {
	rs, err := a.recipeService.LoadAll(ctx)
	if err != nil {
		return err
	}
	printRecipeTable(a.out, rs)
	return nil
}

// Mine lists the signed-in user's recipes.
func (a *App) Mine(ctx context.Context) error {
	rs, err := a.recipeService.LoadMine(ctx)
	if err != nil {
		return err
	}
	printRecipeTable(a.out, rs)
	return nil
}

// UserRecipes lists the recipes of the user given as the first argument.
func (a *App) UserRecipes(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return usage("user <id> (%v)", err)
	}
	rs, err := a.recipeService.LoadByUser(ctx, id)
	if err != nil {
		return err
	}
	printRecipeTable(a.out, rs)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return usage("show <id> (%v)", err)
	}
	r, err := a.recipeService.Open(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		fmt.Fprintf(a.out, "Recipe %d not found\n", id)
		return nil
	}
	printRecipe(a.out, *r)
	return nil
}

// Add walks the user through a new recipe.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Sign in to add recipes")
		return nil
	}

	var req models.RecipeCreate
	var err error
	if req.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if req.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if req.Ingredients, err = GetMultiline(a.reader, "Ingredients, one per line", a.out); err != nil {
		return err
	}
	if req.Instructions, err = GetMultiline(a.reader, "Instructions", a.out); err != nil {
		return err
	}
	if req.Allergies, err = GetOptionalText(a.reader, "Allergies (optional)", a.out); err != nil {
		return err
	}
	if req.PrepTime, err = GetOptionalInt(a.reader, "Prep time in minutes (optional)", a.out); err != nil {
		return err
	}
	if req.CookingTime, err = GetOptionalInt(a.reader, "Cooking time in minutes (optional)", a.out); err != nil {
		return err
	}
	if req.Servings, err = GetOptionalInt(a.reader, "Servings (optional)", a.out); err != nil {
		return err
	}

	r, err := a.recipeService.Create(ctx, req)
	if err != nil {
		return err
	}
	if r != nil {
		fmt.Fprintf(a.out, "Recipe %d created\n", r.ID)
	}
	return nil
}

// Edit changes the recipe given as the first argument. It fetches the
// recipe first so that the prompts can show current values; empty answers
// keep them and clearText empties the optional text fields. The server
// ignores absent numbers, so times and servings can be changed but not
// cleared.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return usage("edit <id> (%v)", err)
	}
	cur, err := a.recipeService.Open(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		fmt.Fprintf(a.out, "Recipe %d not found\n", id)
		return nil
	}
	fmt.Fprintf(a.out, "Press Enter to keep the current value, %q to clear description or allergies.\n", clearText)

	var upd models.RecipeUpdate
	if upd.Title, err = GetOptionalText(a.reader, fmt.Sprintf("Title [%s]", cur.Title), a.out); err != nil {
		return err
	}
	if upd.Description, err = clearableText(a, fmt.Sprintf("Description [%s]", cur.Description)); err != nil {
		return err
	}
	if upd.Ingredients, err = optionalMultiline(a, "Ingredients, one per line"); err != nil {
		return err
	}
	if upd.Instructions, err = optionalMultiline(a, "Instructions"); err != nil {
		return err
	}
	if upd.Allergies, err = clearableText(a, fmt.Sprintf("Allergies [%s]", deref(cur.Allergies))); err != nil {
		return err
	}
	if upd.PrepTime, err = GetOptionalInt(a.reader, fmt.Sprintf("Prep time [%s]", intOrDash(cur.PrepTime)), a.out); err != nil {
		return err
	}
	if upd.CookingTime, err = GetOptionalInt(a.reader, fmt.Sprintf("Cooking time [%s]", intOrDash(cur.CookingTime)), a.out); err != nil {
		return err
	}
	if upd.Servings, err = GetOptionalInt(a.reader, fmt.Sprintf("Servings [%s]", intOrDash(cur.Servings)), a.out); err != nil {
		return err
	}

	if upd.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing changed")
		return nil
	}

	if _, err := a.recipeService.Update(ctx, id, upd); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recipe %d updated\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return usage("delete <id> (%v)", err)
	}
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete recipe %d? Type 'yes' to confirm", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.recipeService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recipe %d deleted\n", id)
	return nil
}

// clearText is the answer that empties an optional text field in edit.
const clearText = "-"

func clearableText(a *App, prompt string) (*string, error) {
	s, err := GetOptionalText(a.reader, prompt, a.out)
	if err != nil || s == nil {
		return nil, err
	}
	if *s == clearText {
		return models.Ptr(""), nil
	}
	return s, nil
}

func optionalMultiline(a *App, prompt string) (*string, error) {
	s, err := GetMultiline(a.reader, prompt+" (empty keeps current)", a.out)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}
