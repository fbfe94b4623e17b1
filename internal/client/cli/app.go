package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cacutler/recipearchive/internal/client/client"
	"github.com/cacutler/recipearchive/internal/client/config"
	"github.com/cacutler/recipearchive/internal/client/repositories/metadata"
	"github.com/cacutler/recipearchive/internal/client/services"
	"github.com/cacutler/recipearchive/internal/client/store"
	"github.com/cacutler/recipearchive/internal/logging"
)

// App is the interactive client: services for the commands, the stores they
// publish to and the terminal it talks to.
type App struct {
	authService   services.AuthService
	recipeService services.RecipeService
	auth          *store.AuthStore
	recipes       *store.RecipeStore
	logger        logging.Logger

	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer

	username      string
	lastAuthErr   *string
	lastRecipeErr *string
	errShown      bool
	unsubscribe   []func()
}

// NewApp opens the local database and wires the API client, stores and
// services described by c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseDSN, logging.Printer{L: logger})
	if err != nil {
		logger.Error(ctx, "error initializing database", "dsn", c.DatabaseDSN, "error", err)
		return nil, err
	}

	tokens := client.NewMetadataTokenStore(metadata.NewSQLiteRepository(db), logger)
	api := client.NewHTTPClient(c.ServerURL, tokens,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithLogger(logger),
	)

	auth := store.NewAuthStore()
	recipes := store.NewRecipeStore()

	app := newApp(
		services.NewAuthService(api, tokens, db, auth, logger),
		services.NewRecipeService(api, recipes, auth),
		auth, recipes, logger, os.Stdin, os.Stdout,
	)
	app.db = db
	return app, nil
}

func newApp(as services.AuthService, rs services.RecipeService, auth *store.AuthStore, recipes *store.RecipeStore,
	logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		authService:   as,
		recipeService: rs,
		auth:          auth,
		recipes:       recipes,
		logger:        logger,
		reader:        bufio.NewReader(in),
		out:           out,
	}
	a.unsubscribe = append(a.unsubscribe,
		auth.Subscribe(a.onAuthChange),
		recipes.Subscribe(a.onRecipesChange),
	)
	return a
}

// Run resumes a stored session if there is one and then serves commands
// until the user quits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to RecipeArchive (type 'help' for commands)")

	restored, err := a.authService.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if restored {
		fmt.Fprintf(a.out, "Signed in as %s\n", a.username)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close detaches from the stores and closes the local database.
func (a *App) Close() error {
	for _, unsub := range a.unsubscribe {
		unsub()
	}
	a.unsubscribe = nil
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.username != ""
}

// takeErrorShown reports whether a store listener printed an error since the
// previous call.
func (a *App) takeErrorShown() bool {
	shown := a.errShown
	a.errShown = false
	return shown
}

func (a *App) status() string {
	if a.username == "" {
		return ""
	}
	return "(" + a.username + ")"
}

// onAuthChange keeps the prompt in step with the session and reports new
// errors. Each failure stores a fresh message pointer, so comparing pointers
// prints every failure once.
func (a *App) onAuthChange(st store.AuthState) {
	a.username = ""
	if st.IsAuthenticated && st.User != nil {
		a.username = st.User.Username
	}
	if st.Error != nil && st.Error != a.lastAuthErr {
		fmt.Fprintln(a.out, "Error:", *st.Error)
		a.errShown = true
	}
	a.lastAuthErr = st.Error
}

func (a *App) onRecipesChange(st store.RecipeState) {
	if st.Error != nil && st.Error != a.lastRecipeErr {
		fmt.Fprintln(a.out, "Error:", *st.Error)
		a.errShown = true
	}
	a.lastRecipeErr = st.Error
}
