package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
)

// debounceTime coalesces the burst of events an editor save produces.
const debounceTime = 100 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{pixelRatio: pipeline.DefaultPixelRatio}

	cmd := &cobra.Command{
		Use:               "watch [script.toml]",
		Short:             "Re-render a script whenever it changes",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], opts)
		},
	}

	addRenderFlags(cmd, &opts, &formatsStr)
	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	render := func() {
		paths, err := renderOnce(ctx, runner, input, opts)
		if err != nil {
			printError("%s", errors.UserMessage(err))
			return
		}
		for _, p := range paths {
			printFile(p)
		}
	}
	render()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory and filter.
	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	printInfo("Watching %s (ctrl+c to stop)", input)

	events := debounce(ctx, watchEvents(ctx, watcher, abs, logger.Warn), debounceTime)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("change detected", "file", input)
			render()
		}
	}
}

// watchEvents forwards write and create events for path.
func watchEvents(ctx context.Context, w *fsnotify.Watcher, path string, warn func(any, ...any)) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !relevant(ev, path) {
					continue
				}
				select {
				case out <- struct{}{}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				warn("watcher error", "err", err)
			}
		}
	}()
	return out
}

func relevant(ev fsnotify.Event, path string) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	return err == nil && name == path
}

// debounce emits once per quiet period of d after one or more inputs.
func debounce(ctx context.Context, in <-chan struct{}, d time.Duration) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		timer := time.NewTimer(d)
		timer.Stop()
		defer timer.Stop()
		pending := false
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-in:
				if !ok {
					if pending {
						select {
						case out <- struct{}{}:
						default:
						}
					}
					return
				}
				// Reset discards any stale tick (Go 1.23 timer semantics).
				timer.Reset(d)
				pending = true
			case <-timer.C:
				if !pending {
					continue
				}
				pending = false
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
