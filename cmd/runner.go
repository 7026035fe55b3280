package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunescout/internal/auth"
	"github.com/desertthunder/tunescout/internal/repositories"
	"github.com/desertthunder/tunescout/internal/services"
	"github.com/desertthunder/tunescout/internal/shared"
	"github.com/desertthunder/tunescout/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	db         *sql.DB
	store      *repositories.RatingStore
	users      *repositories.UserRepository
	session    *auth.Session
	engine     *tasks.DiscoveryEngine
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog services.Catalog
	DB      *sql.DB
	Logger  *log.Logger
	Output  io.Writer
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

	r := &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		output:  opts.Output,
	}

	if opts.DB != nil {
		r.attachDB(opts.DB)
	}

	return r
}

// SetLogger replaces the runner's logger, propagating it to the engine.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.store != nil {
		r.engine = tasks.NewDiscoveryEngine(r.catalog, r.store, logger)
	}
}

// bootstrap loads configuration and opens the database for a command.
//
// The session restores from the persisted user ID, so commands observe either
// the authenticated or the unauthenticated state, never loading.
func (r *Runner) bootstrap(cmd *cli.Command) error {
	configPath := cmd.String("config")
	r.configPath = configPath

	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		r.config = config
	}

	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		r.attachDB(db)
	}

	if r.catalog == nil {
		creds := r.config.Credentials.Spotify
		if creds.ClientID != "" && creds.ClientSecret != "" {
			catalog, err := services.NewSpotifyCatalog(creds.Map(),
				services.WithMarket(r.config.Catalog.Market),
				services.WithRequestRate(r.config.Catalog.RequestsPerS))
			if err != nil {
				return fmt.Errorf("failed to create catalog: %w", err)
			}
			r.catalog = catalog
		}
	}

	r.engine = tasks.NewDiscoveryEngine(r.catalog, r.store, r.logger)
	r.session.Restore(r.config.Session.UserID)

	return nil
}

func (r *Runner) attachDB(db *sql.DB) {
	r.db = db
	r.store = repositories.NewRatingStore(repositories.NewRatingRepository(db))
	r.users = repositories.NewUserRepository(db)
	r.session = auth.NewSession(r.users, r.logger)
	r.engine = tasks.NewDiscoveryEngine(r.catalog, r.store, r.logger)
}

// persistSession writes the signed-in user (or its absence) back to the
// config file so the next invocation restores it.
func (r *Runner) persistSession(userID, email string) error {
	r.config.Session.UserID = userID
	r.config.Session.Email = email

	if r.configPath == "" {
		return nil
	}
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, discoverCommand, ratingsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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
