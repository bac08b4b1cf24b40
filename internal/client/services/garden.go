package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/api"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
	"github.com/pocketfarm/pocketfarm-cli/internal/common"
	"github.com/pocketfarm/pocketfarm-cli/internal/logging"
)

// GardenService keeps the signed-in user's crop collection consistent with
// the server. Local state is never mutated ahead of server confirmation, and
// mutations are serialized so responses can never apply out of order.
//
// Schedules are secondary derived resources: their creation and deletion are
// best-effort, logged on failure, and never surfaced to the user or allowed
// to fail a garden operation.
type GardenService interface {
	SetUser(ctx context.Context, user *models.User)
	Sync(ctx context.Context) error
	AddCrop(ctx context.Context, name string) error
	RemoveCrop(ctx context.Context, name string) error
	UserCrops() []string
}

type gardenService struct {
	client api.Client
	log    logging.Logger
	notify Notifier

	// opMu serializes mutations (sync/add/remove) end to end, including
	// the confirm-then-apply step.
	opMu sync.Mutex

	// mu guards userID and crops for readers.
	mu     sync.Mutex
	userID int
	crops  []string
}

func NewGardenService(client api.Client, log logging.Logger, notify Notifier) GardenService {
	if notify == nil {
		notify = NopNotifier
	}
	return &gardenService{client: client, log: log, notify: notify}
}

// SetUser reacts to identity transitions. A nil user clears the collection;
// a new user id triggers a full sync. Sync failures are reported to the user
// and logged, never returned: there is no caller awaiting them.
func (g *gardenService) SetUser(ctx context.Context, user *models.User) {
	g.mu.Lock()
	if user == nil {
		g.userID = 0
		g.crops = nil
		g.mu.Unlock()
		return
	}
	if user.ID == g.userID {
		g.mu.Unlock()
		return
	}
	g.userID = user.ID
	g.crops = nil
	g.mu.Unlock()

	if err := g.Sync(ctx); err != nil {
		g.log.Error(ctx, "garden sync failed", "user_id", user.ID, "error", err)
	}
}

func (g *gardenService) currentUserID() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.userID
}

// Sync fetches the full crop collection and replaces local state with it.
// For every crop returned it then re-creates the schedule best-effort.
// On fetch failure the previous collection is kept.
func (g *gardenService) Sync(ctx context.Context) error {
	uid := g.currentUserID()
	if uid == 0 {
		return common.ErrNoUserLoggedIn
	}

	g.opMu.Lock()
	defer g.opMu.Unlock()

	crops, err := g.client.GetUserCrops(ctx, uid)
	if err != nil {
		g.notify.Notify("Could not load your garden: " + err.Error())
		return fmt.Errorf("fetching garden: %w", err)
	}

	g.mu.Lock()
	// The identity may have changed while the fetch was in flight.
	if g.userID != uid {
		g.mu.Unlock()
		return nil
	}
	g.crops = crops
	g.mu.Unlock()

	for _, name := range crops {
		if err := g.client.CreateSchedule(ctx, uid, name); err != nil {
			g.log.Warn(ctx, "schedule refresh failed", "crop", name, "error", err)
		}
	}
	return nil
}

// AddCrop adds a crop to the garden. The name is appended locally only after
// the server confirms the addition.
func (g *gardenService) AddCrop(ctx context.Context, name string) error {
	uid := g.currentUserID()
	if uid == 0 {
		g.notify.Notify("Please log in to add crops to your garden")
		return common.ErrNoUserLoggedIn
	}

	g.opMu.Lock()
	defer g.opMu.Unlock()

	if err := g.client.AddToLibrary(ctx, uid, name); err != nil {
		g.notify.Notify("Could not add " + name + ": " + err.Error())
		return fmt.Errorf("adding %q to garden: %w", name, err)
	}

	if err := g.client.CreateSchedule(ctx, uid, name); err != nil {
		g.log.Warn(ctx, "schedule creation failed", "crop", name, "error", err)
	}

	g.mu.Lock()
	if g.userID == uid && !slices.Contains(g.crops, name) {
		g.crops = append(g.crops, name)
	}
	g.mu.Unlock()

	g.notify.Notify(name + " added to your garden")
	return nil
}

// RemoveCrop removes a crop from the garden. A missing schedule on the
// follow-up delete is expected (the crop may never have had one) and is
// tolerated silently.
func (g *gardenService) RemoveCrop(ctx context.Context, name string) error {
	uid := g.currentUserID()
	if uid == 0 {
		g.notify.Notify("Please log in to manage your garden")
		return common.ErrNoUserLoggedIn
	}

	g.opMu.Lock()
	defer g.opMu.Unlock()

	if err := g.client.RemoveFromGarden(ctx, uid, name); err != nil {
		g.notify.Notify("Could not remove " + name + ": " + err.Error())
		return fmt.Errorf("removing %q from garden: %w", name, err)
	}

	if err := g.client.DeleteSchedule(ctx, uid, name); err != nil && !errors.Is(err, common.ErrorNotFound) {
		g.log.Warn(ctx, "schedule deletion failed", "crop", name, "error", err)
	}

	g.mu.Lock()
	if g.userID == uid {
		g.crops = slices.DeleteFunc(g.crops, func(c string) bool { return c == name })
	}
	g.mu.Unlock()

	g.notify.Notify(name + " removed from your garden")
	return nil
}

// UserCrops returns a copy of the last server-confirmed collection.
func (g *gardenService) UserCrops() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.crops)
}
