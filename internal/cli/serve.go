package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/internal/server"
	"github.com/matzehuels/gitgraph/pkg/buildinfo"
	"github.com/matzehuels/gitgraph/pkg/cache"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
	"github.com/matzehuels/gitgraph/pkg/store"
)

// Backends accepted by serve.
const (
	backendMemory = "memory"
	backendFile   = "file"
	backendMongo  = "mongo"
	backendNone   = "none"
	backendRedis  = "redis"
)

// serveOpts holds the serve command flags.
type serveOpts struct {
	addr     string
	store    string // memory, file, mongo
	dataDir  string // file store directory
	mongoURI string
	cache    string // none, file, redis
	redisURL string
	origins  []string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: "127.0.0.1:8080", store: backendMemory, cache: backendFile}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram API and live hover feed",
		Long: `Serve stores diagram scripts and renders them over HTTP.

Hover events for a diagram are pushed to websocket clients on /api/ws.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.store, "store", opts.store, "diagram store: memory, file, mongo")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "file store directory (default: <cache dir>/diagrams)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
	cmd.Flags().StringVar(&opts.cache, "cache", opts.cache, "artifact cache: none, file, redis")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "redis://localhost:6379/0", "Redis connection string")
	cmd.Flags().StringSliceVar(&opts.origins, "allow-origin", nil, "websocket origins to accept (default: any)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	spin := startSpinner(ctx, spinnerOutput(), "Connecting backends...")
	st, err := openStore(ctx, opts)
	if err != nil {
		spin.Stop()
		return err
	}
	defer st.Close()

	ch, err := openCache(ctx, opts)
	spin.Stop()
	if err != nil {
		return err
	}
	// Shared caches outlive a release; keep artifacts of different builds apart.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:           opts.addr,
		Runner:         runner,
		Store:          st,
		Logger:         logger,
		AllowedOrigins: opts.origins,
	})
	printInfo("Listening on %s", StyleLink.Render("http://"+opts.addr))
	printDetail("store: %s · cache: %s", opts.store, opts.cache)
	if opts.store == backendMemory {
		printWarning("Diagrams are kept in memory and lost on exit")
	}
	return srv.Run(ctx)
}

func openStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch opts.store {
	case backendMemory:
		return store.NewMemoryStore(), nil
	case backendFile:
		dir := opts.dataDir
		if dir == "" {
			base, err := cacheDir()
			if err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
			dir = filepath.Join(base, "diagrams")
		}
		return store.NewFileStore(dir)
	case backendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
	}
	return nil, errors.New(errors.ErrCodeInvalidOption, "unknown store %q (must be memory, file or mongo)", opts.store)
}

func openCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.cache {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendFile:
		return newCache(false)
	case backendRedis:
		return cache.NewRedisCache(ctx, opts.redisURL, appName+":")
	}
	return nil, errors.New(errors.ErrCodeInvalidOption, "unknown cache %q (must be none, file or redis)", opts.cache)
}
