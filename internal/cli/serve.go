package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscatter/pkg/config"
	"github.com/matzehuels/roomscatter/pkg/render/floorplan"
	"github.com/matzehuels/roomscatter/pkg/scatter"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	noCache bool   // bypass the estimate cache
	labels  bool   // draw item labels in served SVGs
}

// serveCommand creates the serve command, a small debug server that exposes
// the current plan over HTTP and regenerates on demand.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [config]",
		Short: "Serve placement plans over HTTP",
		Long: `Serve runs the placement engine once for the given configuration and keeps
the result in memory. The plan is available as JSON and as a floor-plan SVG,
and POST /regenerate clears all placements and runs again with a fresh draw.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the footprint estimate cache")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw item labels in served SVGs")

	return cmd
}

// runServe starts the debug HTTP server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, path string, opts *serveOpts) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	region, err := cfg.ResolveRegion()
	if err != nil {
		return err
	}

	scatterOpts, err := cfg.Options()
	if err != nil {
		return err
	}
	scatterOpts.Logger = c.Logger

	sc := newScene(cfg)
	runner, err := c.newRunner(sc, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	director, err := scatter.NewDirector(runner, sc, scatterOpts)
	if err != nil {
		return err
	}

	sc.SetRegion(region)
	if _, err := director.HandleRegionReady(ctx, region); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServeMux(director, scatterOpts.Seed, opts.labels),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	loggerFromContext(ctx).Info("serving plans", "addr", opts.addr)
	printInfo("Listening on %s", opts.addr)
	printNextStep("View the plan", fmt.Sprintf("curl http://%s/plan", opts.addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeMux builds the HTTP routes for the debug server.
func newServeMux(director *scatter.Director, seed uint64, labels bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/plan", func(w http.ResponseWriter, r *http.Request) {
		plan, ok := currentPlan(director, seed)
		if !ok {
			http.Error(w, "no plan available", http.StatusNotFound)
			return
		}
		data, err := floorplan.MarshalPlan(plan)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})

	r.Get("/plan.svg", func(w http.ResponseWriter, r *http.Request) {
		plan, ok := currentPlan(director, seed)
		if !ok {
			http.Error(w, "no plan available", http.StatusNotFound)
			return
		}
		var opts []floorplan.SVGOption
		if labels {
			opts = append(opts, floorplan.WithLabels())
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(floorplan.RenderSVG(plan, opts...))
	})

	r.Post("/regenerate", func(w http.ResponseWriter, r *http.Request) {
		result, err := director.ResetAndRegenerate(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if result == nil {
			http.Error(w, "no region available", http.StatusConflict)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"placed": %d}`+"\n", result.Stats.TotalPlaced)
	})

	return r
}

// currentPlan snapshots the director's state as a plan document.
func currentPlan(director *scatter.Director, seed uint64) (*floorplan.Plan, bool) {
	region, items, ok := director.Snapshot()
	if !ok {
		return nil, false
	}
	plan := &floorplan.Plan{Region: region, Seed: seed, Items: items}
	if result, ok := director.LastResult(); ok {
		plan.Categories = result.Categories
	}
	return plan, true
}
