package facetdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/facetdex/internal/db"
	"github.com/kailas-cloud/facetdex/internal/db/memory"
	dbPostgres "github.com/kailas-cloud/facetdex/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/facetdex/internal/db/redis"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
	recordrepo "github.com/kailas-cloud/facetdex/internal/repository/record"
	choicesuc "github.com/kailas-cloud/facetdex/internal/usecase/choices"
	healthuc "github.com/kailas-cloud/facetdex/internal/usecase/health"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
	questionnaireuc "github.com/kailas-cloud/facetdex/internal/usecase/questionnaire"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type listingUseCase interface {
	List(
		ctx context.Context, t entity.Type, p query.Params, a domrec.Audience, limit, offset int,
	) (listinguc.Page, error)
}

type choicesUseCase interface {
	Describe(ctx context.Context, t entity.Type, p query.Params, a domrec.Audience) (choicesuc.Catalog, error)
}

type questionnaireUseCase interface {
	Upsert(ctx context.Context, t entity.Type, id string, in questionnaireuc.Input) (domrec.Record, bool, error)
	Get(ctx context.Context, t entity.Type, id string, a domrec.Audience) (domrec.Record, error)
	Delete(ctx context.Context, t entity.Type, id string) error
}

// Client is the facetdex SDK entry point.
type Client struct {
	store      db.Store
	listingSvc listingUseCase
	choicesSvc choicesUseCase
	recordSvc  questionnaireUseCase
	healthSvc  healthUseCase
	audience   domrec.Audience
	obs        *observer
}

// New creates a facetdex Client and connects to the storage.
// The provided context is used for migrations and the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("facetdex: storage required (use WithMemory, WithRedis or WithPostgres)")
	}

	if cfg.migrate && cfg.driver == driverPostgres {
		if err := dbPostgres.Migrate(cfg.dsn); err != nil {
			return nil, fmt.Errorf("facetdex: %w", err)
		}
	}

	store, err := createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("facetdex: storage not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Password:  cfg.password,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("facetdex: create redis store: %w", err)
		}
		return s, nil
	case driverPostgres:
		s, err := dbPostgres.NewStore(ctx, dbPostgres.Config{DSN: cfg.dsn})
		if err != nil {
			return nil, fmt.Errorf("facetdex: create postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("facetdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := recordrepo.New(store)
	listingSvc := listinguc.New(repo, nil, cfg.maxPageSize)

	audience := domrec.Public
	if cfg.staff {
		audience = domrec.Staff
	}

	return &Client{
		store:      store,
		listingSvc: listingSvc,
		choicesSvc: choicesuc.New(repo, listingSvc),
		recordSvc:  questionnaireuc.New(repo),
		healthSvc:  healthuc.New(store),
		audience:   audience,
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks storage connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	sp := c.obs.begin("ping", "")
	defer func() { sp.end(err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Questionnaires returns the service for one questionnaire type.
func (c *Client) Questionnaires(t EntityType) *QuestionnaireService {
	return &QuestionnaireService{
		typ:      t,
		listing:  c.listingSvc,
		choices:  c.choicesSvc,
		records:  c.recordSvc,
		audience: c.audience,
		obs:      c.obs,
	}
}
