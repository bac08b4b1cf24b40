// Package api contains the REST client for the PocketFarm backend: the
// Client capability interface consumed by application services, its HTTP
// implementation, and the typed errors the backend can report.
package api

import (
	"context"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
)

// Coordinates is the raw lat/lon pair sent with a signup request; the
// backend geocodes it into a full Location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SignupRequest carries the fields of POST /signup.
type SignupRequest struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Phone    string       `json:"phone,omitempty"`
	Location *Coordinates `json:"location,omitempty"`
}

// Client is the backend capability surface used by the services layer.
//
// Implementations must honor context cancellation on every call. Garden and
// schedule operations are keyed by the numeric user id; crop membership is
// keyed by crop name.
type Client interface {
	Close() error

	// Account operations.
	Login(ctx context.Context, email, password string) (*models.User, error)
	Signup(ctx context.Context, req SignupRequest) (*models.User, error)
	DeleteAccount(ctx context.Context, userID int) error

	// Garden operations.
	GetUserCrops(ctx context.Context, userID int) ([]string, error)
	AddToLibrary(ctx context.Context, userID int, cropName string) error
	RemoveFromGarden(ctx context.Context, userID int, cropName string) error

	// Schedule operations (secondary resources, see services.GardenService).
	CreateSchedule(ctx context.Context, userID int, cropName string) error
	DeleteSchedule(ctx context.Context, userID int, cropName string) error

	// Recommendation operations.
	Recommend(ctx context.Context, query models.RecommendationQuery) ([]models.Crop, error)
	GetCrop(ctx context.Context, name string) (*models.Crop, error)
}
