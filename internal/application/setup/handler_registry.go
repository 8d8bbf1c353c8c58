package setup

import (
	"github.com/islandepoch/islandepoch-go/internal/application/common"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/queries"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/construction"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
	"github.com/islandepoch/islandepoch-go/internal/domain/research"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// Recorder observes ticks and explicit state changes, usually for metrics
type Recorder interface {
	common.TickRecorder
	common.SnapshotRecorder
}

// Dependencies are the collaborators shared by every economy handler
type Dependencies struct {
	Store          *session.Store
	Blueprints     building.Catalog
	Research       research.Catalog
	Repository     game.SaveRepository
	IDs            shared.IDGenerator
	Clock          shared.Clock
	Policy         island.UnlockPolicy
	ResearchIsland int

	// Recorder is optional
	Recorder Recorder
}

// HandlerRegistry builds the domain services once and registers every handler against them
type HandlerRegistry struct {
	deps     Dependencies
	engine   *production.Engine
	manager  *construction.Manager
	research *research.Service
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(deps Dependencies) *HandlerRegistry {
	// Default to real clock and random ids if not provided
	if deps.Clock == nil {
		deps.Clock = shared.NewRealClock()
	}
	if deps.IDs == nil {
		deps.IDs = shared.NewUUIDGenerator()
	}
	if deps.Store == nil {
		deps.Store = session.NewStore(nil)
	}

	return &HandlerRegistry{
		deps:     deps,
		engine:   production.NewEngine(deps.Blueprints, nil),
		manager:  construction.NewManager(deps.Blueprints, deps.IDs, deps.Policy),
		research: research.NewService(deps.Research, deps.IDs, deps.Clock),
	}
}

// Store returns the session the handlers operate on
func (r *HandlerRegistry) Store() *session.Store {
	return r.deps.Store
}

// Engine returns the production engine shared by tick and rate handlers
func (r *HandlerRegistry) Engine() *production.Engine {
	return r.engine
}

func (r *HandlerRegistry) tickRecorder() common.TickRecorder {
	if r.deps.Recorder == nil {
		return nil
	}
	return r.deps.Recorder
}

func (r *HandlerRegistry) snapshotRecorder() common.SnapshotRecorder {
	if r.deps.Recorder == nil {
		return nil
	}
	return r.deps.Recorder
}

// RegisterCommandHandlers registers every state-changing handler:
//   - NewGame, LoadGame, SaveGame, DeleteSave
//   - AdvanceTick, AdvanceEpoch
//   - Build, Demolish, AssignWorker, UnassignWorker
//   - CompleteResearch
func (r *HandlerRegistry) RegisterCommandHandlers(m mediator.Mediator) error {
	d := r.deps
	workers := commands.NewWorkerAssignmentHandler(d.Store, r.manager, d.Blueprints, r.snapshotRecorder())

	registrations := []error{
		mediator.RegisterHandler[*commands.NewGameCommand](m, commands.NewNewGameHandler(d.Store, d.Blueprints, d.IDs, d.Clock)),
		mediator.RegisterHandler[*commands.AdvanceTickCommand](m, commands.NewAdvanceTickHandler(d.Store, r.engine, d.Clock, r.tickRecorder())),
		mediator.RegisterHandler[*commands.AdvanceEpochCommand](m, commands.NewAdvanceEpochHandler(d.Store, r.snapshotRecorder())),
		mediator.RegisterHandler[*commands.BuildCommand](m, commands.NewBuildHandler(d.Store, r.manager, r.snapshotRecorder())),
		mediator.RegisterHandler[*commands.DemolishCommand](m, commands.NewDemolishHandler(d.Store, r.manager, r.snapshotRecorder())),
		mediator.RegisterHandler[*commands.AssignWorkerCommand](m, workers),
		mediator.RegisterHandler[*commands.UnassignWorkerCommand](m, workers),
		mediator.RegisterHandler[*commands.CompleteResearchCommand](m, commands.NewCompleteResearchHandler(d.Store, r.research, d.ResearchIsland, r.snapshotRecorder())),
	}
	if d.Repository != nil {
		registrations = append(registrations,
			mediator.RegisterHandler[*commands.SaveGameCommand](m, commands.NewSaveGameHandler(d.Store, d.Repository, d.Clock)),
			mediator.RegisterHandler[*commands.LoadGameCommand](m, commands.NewLoadGameHandler(d.Store, d.Repository, d.Blueprints, d.IDs, d.Clock)),
			mediator.RegisterHandler[*commands.DeleteSaveCommand](m, commands.NewDeleteSaveHandler(d.Store, d.Repository, d.Blueprints, d.IDs, d.Clock)),
		)
	}

	for _, err := range registrations {
		if err != nil {
			return err
		}
	}
	return nil
}

// RegisterQueryHandlers registers the read-only handlers
func (r *HandlerRegistry) RegisterQueryHandlers(m mediator.Mediator) error {
	d := r.deps

	registrations := []error{
		mediator.RegisterHandler[*queries.GetGameStateQuery](m, queries.NewGetGameStateHandler(d.Store, d.Blueprints, d.Policy)),
		mediator.RegisterHandler[*queries.GetIslandQuery](m, queries.NewGetIslandHandler(d.Store, d.Blueprints, r.engine, d.Policy)),
		mediator.RegisterHandler[*queries.GetProductionRatesQuery](m, queries.NewGetProductionRatesHandler(d.Store, r.engine)),
		mediator.RegisterHandler[*queries.GetBuildingProductivityQuery](m, queries.NewGetBuildingProductivityHandler(d.Store, r.engine)),
		mediator.RegisterHandler[*queries.ListBlueprintsQuery](m, queries.NewListBlueprintsHandler(d.Store, r.manager)),
		mediator.RegisterHandler[*queries.ListResearchQuery](m, queries.NewListResearchHandler(d.Store, r.research)),
	}

	for _, err := range registrations {
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateConfiguredMediator creates a mediator with every economy handler registered.
// Middleware runs in the order given, outermost first.
func (r *HandlerRegistry) CreateConfiguredMediator(middleware ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middleware {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterCommandHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterQueryHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
