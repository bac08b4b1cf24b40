package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/api"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/config"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/repositories/session"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/services"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/storage"
	"github.com/pocketfarm/pocketfarm-cli/internal/logging"
)

// App ties the services together behind the REPL command surface. It holds
// the single "currently inspected crop" reference with its resolved
// companion list for the show command.
type App struct {
	config  *config.Config
	session services.SessionService
	garden  services.GardenService
	recom   services.RecommendationService
	log     logging.Logger
	reader  *bufio.Reader

	recommended []models.Crop
	inspected   *models.Crop
	companions  []models.Crop
}

// NewApp wires the local database, the API client and the three services.
// A previously persisted session is restored before the first prompt, and
// the garden is synced for the restored user.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	apiClient, err := api.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	sessionSvc, err := services.NewSessionService(ctx, apiClient, session.NewSQLiteRepository(db), log)
	if err != nil {
		return nil, err
	}

	gardenSvc := services.NewGardenService(apiClient, log, services.NotifierFunc(func(msg string) {
		_, _ = printlnFn(msg)
	}))
	recomSvc := services.NewRecommendationService(apiClient, log)

	app := &App{
		config:  cfg,
		session: sessionSvc,
		garden:  gardenSvc,
		recom:   recomSvc,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}

	if user := sessionSvc.CurrentUser(); user != nil {
		gardenSvc.SetUser(ctx, user)
	}

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if user := a.session.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Email)
	}
	return ""
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.session.Close(ctx) }()

	printlnFn("Welcome to PocketFarm CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
