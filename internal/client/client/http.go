package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cacutler/recipearchive/internal/client/models"
	"github.com/cacutler/recipearchive/internal/logging"
)

// HTTPClient implements Client over net/http. It holds no per-request state;
// concurrent calls are independent.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	logger  logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default http.Client, e.g. to set a timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL. Endpoint
// paths are appended to baseURL verbatim. tokens may be nil, in which case
// NopTokenStore is used.
func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) *HTTPClient {
	if tokens == nil {
		tokens = NopTokenStore{}
	}
	c := &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	resp, err := call[models.LoginResponse](ctx, c, http.MethodPost, "/auth/login",
		models.LoginRequest{Username: username, Password: password}, false)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Token != "" {
		if err := c.tokens.Set(ctx, resp.Token); err != nil {
			return nil, fmt.Errorf("persist credential: %w", err)
		}
	}
	return resp, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	return call[models.User](ctx, c, http.MethodPost, "/users", req, false)
}

func (c *HTTPClient) Logout(ctx context.Context) {
	c.tokens.Remove(ctx)
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return call[models.User](ctx, c, http.MethodGet, userPath(id), nil, true)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	return call[models.User](ctx, c, http.MethodPatch, userPath(id), upd, true)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.request(ctx, http.MethodDelete, userPath(id), nil, true, nil)
	return err
}

func (c *HTTPClient) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	return recipeList(call[[]models.Recipe](ctx, c, http.MethodGet, "/recipes", nil, false))
}

func (c *HTTPClient) GetRecipeByID(ctx context.Context, id int64) (*models.Recipe, error) {
	return call[models.Recipe](ctx, c, http.MethodGet, recipePath(id), nil, false)
}

func (c *HTTPClient) GetUserRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	return recipeList(call[[]models.Recipe](ctx, c, http.MethodGet, "/recipes/user/"+strconv.FormatInt(userID, 10), nil, false))
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, req models.RecipeCreate) (*models.Recipe, error) {
	return call[models.Recipe](ctx, c, http.MethodPost, "/recipes", req, true)
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, id int64, upd models.RecipeUpdate) (*models.Recipe, error) {
	return call[models.Recipe](ctx, c, http.MethodPut, recipePath(id), upd, true)
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, id int64) error {
	_, err := c.request(ctx, http.MethodDelete, recipePath(id), nil, true, nil)
	return err
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}

func recipePath(id int64) string {
	return "/recipes/" + strconv.FormatInt(id, 10)
}

func recipeList(rs *[]models.Recipe, err error) ([]models.Recipe, error) {
	if err != nil || rs == nil {
		return nil, err
	}
	return *rs, nil
}
