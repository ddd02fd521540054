package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"spacex-dashboard/internal/api"
	"spacex-dashboard/internal/api/handler"
	"spacex-dashboard/internal/binding"
	"spacex-dashboard/internal/ingest"
	"spacex-dashboard/internal/model"
	"spacex-dashboard/internal/render"
	"spacex-dashboard/internal/store"
	"spacex-dashboard/pkg/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the launch table and serve the dashboard",
	Long: `Loads the launch CSV once, then serves the dashboard page, the callback API
and the chart endpoints until SIGINT or SIGTERM. Running the binary without a
subcommand does the same.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var audit *store.Store
	if cfg.DBPath != "" {
		s, err := store.Open(cfg.DBPath, log.Named("store"))
		if err != nil {
			return err
		}
		defer s.Close()
		audit = s
	}

	ds, err := loadDataset(ctx, audit)
	if err != nil {
		return err
	}

	renderer := render.New(cfg.ChartWidth, cfg.ChartHeight)
	table, err := binding.NewDashboardTable(ds, renderer, log.Named("binding"))
	if err != nil {
		return err
	}

	// a nil *store.Store must not reach the handler as a non-nil interface
	var auditLog handler.AuditLog
	if audit != nil {
		table.Observe(audit)
		auditLog = audit
	}

	r := router.New(log.Named("http"))
	api.RegisterRoutes(r, handler.New(ds, table, renderer, auditLog, log.Named("handler")))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.Start(gctx, cfg.Addr, cfg.Shutdown())
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}

// loadDataset reads the launch table, recording the outcome in the audit
// store when one is open.
func loadDataset(ctx context.Context, audit *store.Store) (*model.Dataset, error) {
	ds, err := ingest.NewLoader(log.Named("ingest")).Load(ctx, cfg.DataPath)
	if err != nil {
		if audit != nil {
			if _, serr := audit.SaveLoadError(ctx, cfg.DataPath, err); serr != nil {
				log.Warn("failed to record load error", zap.Error(serr))
			}
		}
		return nil, err
	}
	if audit != nil {
		if _, err := audit.SaveLoad(ctx, ds); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
