package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/config"
	dbPostgres "github.com/kailas-cloud/facetdex/internal/db/postgres"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	"github.com/kailas-cloud/facetdex/internal/domain/search/query"
	recordrepo "github.com/kailas-cloud/facetdex/internal/repository/record"
	choicesuc "github.com/kailas-cloud/facetdex/internal/usecase/choices"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
)

func migrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cfg.Database.Driver != config.DriverPostgres {
				return errors.New("migrate requires database.driver: postgres")
			}
			if err := dbPostgres.Migrate(cfg.Database.DSN); err != nil {
				return err
			}
			logger.Info("Applied database migrations")
			return nil
		},
	}
}

func choicesCmd(opts *options) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "choices",
		Short: "Print the filter-choices catalog of a questionnaire type as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := entity.Parse(typeName)
			if err != nil {
				return err
			}

			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			repo := recordrepo.New(store)
			svc := choicesuc.New(repo, listinguc.New(repo, nil, cfg.Listing.MaxPageSize))
			cat, err := svc.Describe(ctx, t, query.Params{}, domrec.Public)
			if err != nil {
				return fmt.Errorf("describe %s: %w", t, err)
			}
			logger.Debug("Described choices", zap.String("entity_type", t.String()), zap.Int("entries", len(cat.Entries)))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cat)
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Questionnaire type: designer, repair, supplier, media")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
