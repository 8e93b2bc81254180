package nodedetails

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// LoaderOptions configures a new loader
type LoaderOptions struct {
	Plugins      PluginSource
	Parameters   ParameterSource
	Logger       *slog.Logger
	RenderLogger RenderLogger
	PageSize     int
	Retries      int
	RetryDelay   time.Duration
	Now          func() time.Time
}

// Loader fetches the plugin data of a node and resolves its Detail.
type Loader struct {
	plugins      PluginSource
	parameters   ParameterSource
	logger       *slog.Logger
	renderLogger RenderLogger
	listOptions  ListOptions
	retries      int
	retryDelay   time.Duration
	now          func() time.Time
}

// NewLoader returns a new Loader configured with the given options.
func NewLoader(opts LoaderOptions) (*Loader, error) {
	if opts.Plugins == nil {
		return nil, fmt.Errorf("plugin source is required")
	}
	if opts.Parameters == nil {
		return nil, fmt.Errorf("parameter source is required")
	}
	if opts.Retries < 0 {
		return nil, fmt.Errorf("retries must not be negative")
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.RenderLogger == nil {
		opts.RenderLogger = NewNullRenderLogger()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Loader{
		plugins:      opts.Plugins,
		parameters:   opts.Parameters,
		logger:       opts.Logger,
		renderLogger: opts.RenderLogger,
		listOptions:  ListOptions{Limit: opts.PageSize, Offset: 0},
		retries:      opts.Retries,
		retryDelay:   opts.RetryDelay,
		now:          opts.Now,
	}, nil
}

// Fetch retrieves the plugin, its declared parameters and the node's
// parameter bindings. The bindings and the plugin are fetched concurrently.
func (l *Loader) Fetch(ctx context.Context, node *Node) (*Resources, error) {
	if node == nil {
		return nil, fmt.Errorf("node is required")
	}
	var res Resources
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.withRetry(ctx, "list parameters", func(ctx context.Context) error {
			bindings, err := l.parameters.ListParameters(ctx, node, l.listOptions)
			res.Bindings = bindings
			return err
		})
	})
	g.Go(func() error {
		if err := l.withRetry(ctx, "get plugin", func(ctx context.Context) error {
			plugin, err := l.plugins.GetPlugin(ctx, node)
			res.Plugin = plugin
			return err
		}); err != nil {
			return err
		}
		return l.withRetry(ctx, "list plugin parameters", func(ctx context.Context) error {
			params, err := l.plugins.ListPluginParameters(ctx, res.Plugin, l.listOptions)
			res.PluginParameters = params
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

// Load fetches the node's resources and resolves its detail. When the fetch
// fails the error is returned and no detail is produced; callers may still
// show NewDetail(node, nil).
func (l *Loader) Load(ctx context.Context, node *Node) (*Detail, error) {
	if node == nil {
		return nil, fmt.Errorf("node is required")
	}
	res, err := l.Fetch(ctx, node)
	if err != nil {
		l.logger.Warn("failed to fetch node resources",
			slog.Int("node_id", node.ID),
			slog.String("plugin", PluginTitle(node)),
			slog.String("error", err.Error()))
		return nil, err
	}
	detail := NewDetail(node, res)
	l.logger.Debug("resolved node detail",
		slog.Int("node_id", detail.NodeID),
		slog.String("status", detail.StatusLabel),
		slog.String("runtime", detail.Runtime))

	if err := l.renderLogger.LogRender(ctx, NewRenderLogEntry(detail, l.now())); err != nil {
		l.logger.Error("failed to log render",
			slog.Int("node_id", detail.NodeID),
			slog.String("error", err.Error()))
	}
	return detail, nil
}

func (l *Loader) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= l.retries || !IsRecoverable(err) {
			break
		}
		l.logger.Debug("retrying fetch",
			slog.String("op", op),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return WrapError(ErrorTypeTimeout, ctx.Err())
		case <-time.After(l.retryDelay):
		}
	}
	return fmt.Errorf("%s: %w", op, ClassifyError(err))
}
