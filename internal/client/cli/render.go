package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cacutler/recipearchive/internal/client/models"
)

const maxTitleWidth = 40

func printRecipeTable(w io.Writer, rs []models.Recipe) {
	if len(rs) == 0 {
		fmt.Fprintln(w, "No recipes")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tOWNER\tTOTAL TIME\tSERVINGS")
	for _, r := range rs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			r.ID, truncate(r.Title, maxTitleWidth), r.UserID, totalTime(r), intOrDash(r.Servings))
	}
	_ = tw.Flush()
}

func printRecipe(w io.Writer, r models.Recipe) {
	fmt.Fprintf(w, "#%d %s\n", r.ID, r.Title)
	if r.Description != "" {
		fmt.Fprintln(w, r.Description)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Owner\t%d\n", r.UserID)
	fmt.Fprintf(tw, "Prep time\t%s\n", minutes(r.PrepTime))
	fmt.Fprintf(tw, "Cooking time\t%s\n", minutes(r.CookingTime))
	fmt.Fprintf(tw, "Servings\t%s\n", intOrDash(r.Servings))
	if r.Allergies != nil && *r.Allergies != "" {
		fmt.Fprintf(tw, "Allergies\t%s\n", *r.Allergies)
	}
	if r.CreatedAt != nil {
		fmt.Fprintf(tw, "Created\t%s\n", r.CreatedAt)
	}
	if r.UpdatedAt != nil {
		fmt.Fprintf(tw, "Updated\t%s\n", r.UpdatedAt)
	}
	_ = tw.Flush()

	fmt.Fprintln(w, "\nIngredients:")
	for _, line := range strings.Split(r.Ingredients, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintln(w, "  -", line)
		}
	}

	fmt.Fprintln(w, "\nInstructions:")
	fmt.Fprintln(w, r.Instructions)
}

func printUser(w io.Writer, u models.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%d\n", u.ID)
	fmt.Fprintf(tw, "Username\t%s\n", u.Username)
	fmt.Fprintf(tw, "Name\t%s\n", u.FullName())
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	if u.CreatedAt != nil {
		fmt.Fprintf(tw, "Member since\t%s\n", u.CreatedAt)
	}
	_ = tw.Flush()
}

func displayName(u models.User) string {
	if n := u.FullName(); n != "" {
		return n
	}
	return u.Username
}

func totalTime(r models.Recipe) string {
	if r.PrepTime == nil && r.CookingTime == nil {
		return "-"
	}
	total := 0
	if r.PrepTime != nil {
		total += *r.PrepTime
	}
	if r.CookingTime != nil {
		total += *r.CookingTime
	}
	return strconv.Itoa(total) + " min"
}

func minutes(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p) + " min"
}

func intOrDash(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
