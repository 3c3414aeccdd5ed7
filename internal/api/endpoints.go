package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DateLayout is the query format for per-day endpoints.
const DateLayout = "2006-01-02"

// Backend is the capability set the rest of fitlog consumes. *Client is the
// network implementation; package fake provides an in-memory one.
type Backend interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, req RegisterRequest) error
	RefreshToken(ctx context.Context) error
	Logout() error

	Profile(ctx context.Context) (Profile, error)

	FoodRecords(ctx context.Context, day time.Time) ([]FoodRecord, error)
	AddFood(ctx context.Context, in FoodInput) (FoodRecord, error)
	DeleteFood(ctx context.Context, id string) error
	SearchFoods(ctx context.Context, keyword string) ([]FoodItem, error)

	ExerciseRecords(ctx context.Context, day time.Time) ([]ExerciseRecord, error)
	AddExercise(ctx context.Context, in ExerciseInput) (ExerciseRecord, error)
	DeleteExercise(ctx context.Context, id string) error
	SearchSports(ctx context.Context, keyword string) ([]SportItem, error)

	SearchRecipes(ctx context.Context, keyword string) ([]Recipe, error)
	Recipe(ctx context.Context, id string) (Recipe, error)

	DailySummary(ctx context.Context, day time.Time) (DailySummary, error)
	Suggest(ctx context.Context, req SuggestionRequest) (Suggestion, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

var (
	epLogin    = Endpoint{Method: http.MethodPost, Path: "/api/auth/login"}
	epRegister = Endpoint{Method: http.MethodPost, Path: "/api/auth/register"}
	epRefresh  = Endpoint{Method: http.MethodPost, Path: "/api/auth/refresh", Auth: true}
	epProfile  = Endpoint{Method: http.MethodGet, Path: "/api/user/profile", Auth: true}

	epFoodRecords  = Endpoint{Method: http.MethodGet, Path: "/api/food/records", Auth: true}
	epAddFood      = Endpoint{Method: http.MethodPost, Path: "/api/food/records", Auth: true}
	epFoodSearch   = Endpoint{Method: http.MethodGet, Path: "/api/food/search", Auth: true}
	epExercises    = Endpoint{Method: http.MethodGet, Path: "/api/exercise/records", Auth: true}
	epAddExercise  = Endpoint{Method: http.MethodPost, Path: "/api/exercise/records", Auth: true}
	epSportSearch  = Endpoint{Method: http.MethodGet, Path: "/api/sports/search", Auth: true}
	epRecipeSearch = Endpoint{Method: http.MethodGet, Path: "/api/recipes/search", Auth: true}
	epSummary      = Endpoint{Method: http.MethodGet, Path: "/api/summary/daily", Auth: true}
	epSuggest      = Endpoint{Method: http.MethodPost, Path: "/api/ai/suggestions", Auth: true}
)

// Login authenticates and stores the returned token. Nothing is stored when
// the call fails or ctx is cancelled before the token arrives.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if c == nil {
		return ErrNilClient
	}
	req := LoginRequest{Username: strings.TrimSpace(username), Password: password}
	return c.obtainToken(ctx, epLogin, req)
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if c == nil {
		return ErrNilClient
	}
	req.Username = strings.TrimSpace(req.Username)
	return c.obtainToken(ctx, epRegister, req)
}

// RefreshToken exchanges the stored token for a new one, overwriting it.
func (c *Client) RefreshToken(ctx context.Context) error {
	if c == nil {
		return ErrNilClient
	}
	return c.obtainToken(ctx, epRefresh, nil)
}

// Logout forgets the stored token.
func (c *Client) Logout() error {
	if c == nil {
		return ErrNilClient
	}
	if err := c.tokens.Clear(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (c *Client) obtainToken(ctx context.Context, ep Endpoint, body any) error {
	var tok TokenResponse
	if err := c.Call(ctx, ep, Params{Body: body}, &tok); err != nil {
		return err
	}
	value := tok.Value()
	if value == "" {
		return decodeError(fmt.Errorf("response missing access token"))
	}
	if err := ctx.Err(); err != nil {
		return transportError(ctx, err)
	}
	if err := c.tokens.Save(value); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	if c == nil {
		return Profile{}, ErrNilClient
	}
	var payload Profile
	if err := c.Call(ctx, epProfile, Params{}, &payload); err != nil {
		return Profile{}, err
	}
	return payload, nil
}

// FoodRecords lists the food entries logged on day.
func (c *Client) FoodRecords(ctx context.Context, day time.Time) ([]FoodRecord, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	var payload []FoodRecord
	if err := c.callList(ctx, epFoodRecords, dayQuery(day), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AddFood logs a food entry and returns the stored record.
func (c *Client) AddFood(ctx context.Context, in FoodInput) (FoodRecord, error) {
	if c == nil {
		return FoodRecord{}, ErrNilClient
	}
	var payload FoodRecord
	if err := c.Call(ctx, epAddFood, Params{Body: in}, &payload); err != nil {
		return FoodRecord{}, err
	}
	return payload, nil
}

// DeleteFood removes a food entry.
func (c *Client) DeleteFood(ctx context.Context, id string) error {
	if c == nil {
		return ErrNilClient
	}
	ep, err := recordEndpoint(http.MethodDelete, "/api/food/records", id)
	if err != nil {
		return err
	}
	return c.Call(ctx, ep, Params{}, nil)
}

// SearchFoods queries the food database.
func (c *Client) SearchFoods(ctx context.Context, keyword string) ([]FoodItem, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	var payload []FoodItem
	if err := c.callList(ctx, epFoodSearch, keywordQuery(keyword), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ExerciseRecords lists the exercise entries logged on day.
func (c *Client) ExerciseRecords(ctx context.Context, day time.Time) ([]ExerciseRecord, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	var payload []ExerciseRecord
	if err := c.callList(ctx, epExercises, dayQuery(day), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AddExercise logs an exercise entry and returns the stored record.
func (c *Client) AddExercise(ctx context.Context, in ExerciseInput) (ExerciseRecord, error) {
	if c == nil {
		return ExerciseRecord{}, ErrNilClient
	}
	var payload ExerciseRecord
	if err := c.Call(ctx, epAddExercise, Params{Body: in}, &payload); err != nil {
		return ExerciseRecord{}, err
	}
	return payload, nil
}

// DeleteExercise removes an exercise entry.
func (c *Client) DeleteExercise(ctx context.Context, id string) error {
	if c == nil {
		return ErrNilClient
	}
	ep, err := recordEndpoint(http.MethodDelete, "/api/exercise/records", id)
	if err != nil {
		return err
	}
	return c.Call(ctx, ep, Params{}, nil)
}

// SearchSports queries the sports catalogue.
func (c *Client) SearchSports(ctx context.Context, keyword string) ([]SportItem, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	var payload []SportItem
	if err := c.callList(ctx, epSportSearch, keywordQuery(keyword), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SearchRecipes queries recipes by keyword.
func (c *Client) SearchRecipes(ctx context.Context, keyword string) ([]Recipe, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	var payload []Recipe
	if err := c.callList(ctx, epRecipeSearch, keywordQuery(keyword), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Recipe fetches a single recipe.
func (c *Client) Recipe(ctx context.Context, id string) (Recipe, error) {
	if c == nil {
		return Recipe{}, ErrNilClient
	}
	ep, err := recordEndpoint(http.MethodGet, "/api/recipes", id)
	if err != nil {
		return Recipe{}, err
	}
	var payload Recipe
	if err := c.Call(ctx, ep, Params{}, &payload); err != nil {
		return Recipe{}, err
	}
	return payload, nil
}

// DailySummary fetches the backend's own totals for day.
func (c *Client) DailySummary(ctx context.Context, day time.Time) (DailySummary, error) {
	if c == nil {
		return DailySummary{}, ErrNilClient
	}
	var payload DailySummary
	if err := c.Call(ctx, epSummary, Params{Query: dayQuery(day)}, &payload); err != nil {
		return DailySummary{}, err
	}
	return payload, nil
}

// Suggest asks the backend for an AI-generated diet or exercise suggestion.
func (c *Client) Suggest(ctx context.Context, req SuggestionRequest) (Suggestion, error) {
	if c == nil {
		return Suggestion{}, ErrNilClient
	}
	switch req.Type {
	case SuggestDiet, SuggestExercise:
	default:
		return Suggestion{}, &Error{Kind: KindClientError, Message: fmt.Sprintf("unknown suggestion type %q", req.Type)}
	}
	var payload Suggestion
	if err := c.Call(ctx, epSuggest, Params{Body: req}, &payload); err != nil {
		return Suggestion{}, err
	}
	if payload.Type == "" {
		payload.Type = req.Type
	}
	return payload, nil
}

// callList accepts either a bare JSON array or an object wrapping the array
// under "items" or "records".
func (c *Client) callList(ctx context.Context, ep Endpoint, query url.Values, dest any) error {
	var raw json.RawMessage
	if err := c.Call(ctx, ep, Params{Query: query}, &raw); err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Items   json.RawMessage `json:"items"`
			Records json.RawMessage `json:"records"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return decodeError(fmt.Errorf("decode list: %w", err))
		}
		switch {
		case len(wrapped.Items) > 0:
			trimmed = wrapped.Items
		case len(wrapped.Records) > 0:
			trimmed = wrapped.Records
		default:
			return decodeError(fmt.Errorf("decode list: no items or records field"))
		}
	}
	if bytes.Equal(bytes.TrimSpace(trimmed), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return decodeError(fmt.Errorf("decode list: %w", err))
	}
	return nil
}

func recordEndpoint(method, collection, id string) (Endpoint, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/?#") {
		return Endpoint{}, &Error{Kind: KindClientError, Message: fmt.Sprintf("invalid record id %q", id)}
	}
	return Endpoint{Method: method, Path: collection + "/" + id, Auth: true}, nil
}

func dayQuery(day time.Time) url.Values {
	values := url.Values{}
	if !day.IsZero() {
		values.Set("date", day.Format(DateLayout))
	}
	return values
}

func keywordQuery(keyword string) url.Values {
	values := url.Values{}
	if kw := strings.TrimSpace(keyword); kw != "" {
		values.Set("keyword", kw)
	}
	return values
}
