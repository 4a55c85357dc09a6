package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytcopy/internal/matcher"
	"github.com/desertthunder/ytcopy/internal/services"
	"github.com/desertthunder/ytcopy/internal/shared"
	"github.com/desertthunder/ytcopy/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Catalog clients are built from the loaded config on first use unless they were injected through [RunnerOpts].
type Runner struct {
	config     *shared.Config
	configPath string
	source     services.SourceCatalog
	dest       services.DestinationCatalog
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.TransferEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Source      services.SourceCatalog
	Destination services.DestinationCatalog
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		source:     opts.Source,
		dest:       opts.Destination,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		loadCommand, exportCommand, mergeCommand, playlistsCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the config named by --config (when the file exists) and applies --debug.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	path := cmd.String("config")
	if path == "" {
		return ctx, nil
	}
	r.configPath = path

	if _, err := os.Stat(path); err != nil {
		r.logger.Debug("config file not found, using defaults", "path", path)
		return ctx, nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return ctx, err
	}
	r.config = config
	r.logger.Debug("loaded config", "path", path)
	return ctx, nil
}

// sourceCatalog returns the Spotify client, authenticating on first use.
func (r *Runner) sourceCatalog(ctx context.Context) (services.SourceCatalog, error) {
	if r.source != nil {
		return r.source, nil
	}

	clientID, clientSecret, err := r.config.SpotifyCredentials()
	if err != nil {
		return nil, err
	}
	svc, err := services.NewSpotifyService(ctx, clientID, clientSecret, shared.WithLogger(r.logger, "service", "spotify"))
	if err != nil {
		return nil, err
	}
	r.source = svc
	return svc, nil
}

// destination returns the YouTube Music proxy client wrapped in the search cache.
func (r *Runner) destination() services.DestinationCatalog {
	if r.dest != nil {
		return r.dest
	}

	yt := r.config.Credentials.YouTube
	svc := services.NewYouTubeService(
		yt.ProxyURL,
		services.WithAuthFile(shared.ExpandHome(yt.HeadersPath)),
		services.WithRateLimit(yt.RequestsPerSecond),
	)
	r.dest = services.NewCachedSearch(svc, r.config.Transfer.SearchCacheSize)
	return r.dest
}

// transferEngine builds the engine from the transfer config on first use.
func (r *Runner) transferEngine() *tasks.TransferEngine {
	if r.engine != nil {
		return r.engine
	}

	t := r.config.Transfer
	var picker matcher.Picker = matcher.FirstResult{}
	if t.Strategy == "token_overlap" {
		picker = matcher.TokenOverlap{MinScore: t.MinScore}
	}

	r.engine = tasks.NewTransferEngine(
		r.destination(),
		tasks.WithPicker(picker),
		tasks.WithDescription(t.Description),
		tasks.WithContentsLimit(t.ContentsLimit),
		tasks.WithSearchWorkers(t.SearchWorkers),
		tasks.WithEngineLogger(shared.WithLogger(r.logger, "component", "engine")),
	)
	return r.engine
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
