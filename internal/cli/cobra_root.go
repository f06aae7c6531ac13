package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"worker/internal/api"
	"worker/internal/config"
	"worker/internal/logging"
	"worker/internal/services"
)

// APIFactory opens the business API for a loaded configuration. The
// returned function releases what the API holds open.
type APIFactory func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// DefaultAPIFactory opens the configured SQLite database
func DefaultAPIFactory(cfg *config.Config) (api.BusinessAPI, func() error, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}

	businessAPI, err := api.NewBusinessAPIFromConfig(repo, cfg, nil)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	return businessAPI, repo.Close, nil
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	factory    APIFactory
	configFile string

	config   *config.Config
	app      *App
	closeAPI func() error
}

// NewRootCommand creates the root cobra command with global flags. The API
// is opened on first use, after flags have been applied to the configuration.
func NewRootCommand(factory APIFactory) *RootCommand {
	if factory == nil {
		factory = DefaultAPIFactory
	}
	root := &RootCommand{factory: factory}

	root.cmd = &cobra.Command{
		Use:   "worker",
		Short: "Track the time spent on projects",
		Long: `worker tracks time per project by clocking in and out.

Time is kept as intervals. The timesheet groups them by the day they started
on and compares every day against the daily goal. Intervals that have been
reported elsewhere can be marked as registered and hidden from the timesheet.

EXAMPLES:
  worker project add "Worker" --description "Time tracking"
  worker in Worker                         # Clock in now
  worker out Worker --at 17:30             # Clock out at 17:30 today
  worker timesheet Worker --limit 7        # The last seven working days
  worker register 42                       # Mark interval #42 as registered
  worker status                            # Clock activity of every project

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is ~/.worker/config.toml unless --config is given.

  Database Configuration:
    WORKER_DB_DIR                          Database directory (default: ~/.worker)
    WORKER_DB_FILENAME                     Database filename (default: worker.db)
    WORKER_DB_QUERY_TIMEOUT                Query timeout (default: 10s)
    WORKER_DB_WRITE_TIMEOUT                Write timeout (default: 5s)
    WORKER_DB_DIR_PERMISSIONS              Database directory mode (default: 0755)

  Time Configuration:
    WORKER_TIME_DISPLAY_FORMAT             Date and time format (default: 2006-01-02 15:04)
    WORKER_TIME_CLOCK_FORMAT               Clock format, also for --at (default: 15:04)
    WORKER_TIME_LOCATION                   IANA time zone (default: local)

  Display Configuration:
    WORKER_DISPLAY_INTERVAL_FORMAT         fraction, digital or compact (default: fraction)
    WORKER_DISPLAY_LOCALE                  Locale of day titles (default: auto)
    WORKER_DISPLAY_GROUP_ORDER             newest-first or oldest-first (default: newest-first)
    WORKER_DISPLAY_DAILY_GOAL              Daily goal (default: 8h)
    WORKER_DISPLAY_SUMMARY_PERIOD          day, week or month (default: month)

  Validation Configuration:
    WORKER_VALIDATION_PROJECT_NAME_MIN     Min project name length (default: 1)
    WORKER_VALIDATION_PROJECT_NAME_MAX     Max project name length (default: 255)

  Application Configuration:
    WORKER_APP_TIMEOUT                     Command timeout (default: 60s)
    WORKER_APP_VERBOSE                     Enable verbose output (default: false)
    WORKER_LOG_LEVEL                       Log level (default: warn)
    WORKER_LOG_FORMAT                      console or json (default: console)

GETTING HELP:
  worker [command] --help                  # Get help for any specific command
  worker completion bash                   # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and releases the API afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if closeErr := r.close(); err == nil {
		err = closeErr
	}
	return err
}

func (r *RootCommand) close() error {
	if r.closeAPI == nil {
		return nil
	}
	closeAPI := r.closeAPI
	r.closeAPI = nil
	return closeAPI()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "Config file (default ~/.worker/config.toml)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides WORKER_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides WORKER_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides WORKER_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides WORKER_DB_WRITE_TIMEOUT)")

	// Time configuration
	flags.String("time-format", "", "Date and time format (overrides WORKER_TIME_DISPLAY_FORMAT)")
	flags.String("clock-format", "", "Clock format (overrides WORKER_TIME_CLOCK_FORMAT)")
	flags.String("location", "", "IANA time zone (overrides WORKER_TIME_LOCATION)")

	// Display configuration
	flags.String("interval-format", "", "fraction, digital or compact (overrides WORKER_DISPLAY_INTERVAL_FORMAT)")
	flags.String("locale", "", "Locale of day titles (overrides WORKER_DISPLAY_LOCALE)")
	flags.String("group-order", "", "newest-first or oldest-first (overrides WORKER_DISPLAY_GROUP_ORDER)")
	flags.Duration("daily-goal", 0, "Daily goal (overrides WORKER_DISPLAY_DAILY_GOAL)")
	flags.String("summary-period", "", "day, week or month (overrides WORKER_DISPLAY_SUMMARY_PERIOD)")

	// Validation configuration
	flags.Int("project-name-min-length", 0, "Minimum project name length (overrides WORKER_VALIDATION_PROJECT_NAME_MIN)")
	flags.Int("project-name-max-length", 0, "Maximum project name length (overrides WORKER_VALIDATION_PROJECT_NAME_MAX)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides WORKER_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides WORKER_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides WORKER_LOG_LEVEL)")
	flags.String("log-format", "", "console or json (overrides WORKER_LOG_FORMAT)")
}

// getOverridesFromFlags collects the flags given on the command line
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string, dst **string) {
		if flags.Changed(name) {
			value, _ := flags.GetString(name)
			*dst = &value
		}
	}
	durationFlag := func(name string, dst **time.Duration) {
		if flags.Changed(name) {
			value, _ := flags.GetDuration(name)
			*dst = &value
		}
	}
	intFlag := func(name string, dst **int) {
		if flags.Changed(name) {
			value, _ := flags.GetInt(name)
			*dst = &value
		}
	}

	stringFlag("db-dir", &overrides.DBDir)
	stringFlag("db-filename", &overrides.DBFilename)
	durationFlag("db-query-timeout", &overrides.DBQueryTimeout)
	durationFlag("db-write-timeout", &overrides.DBWriteTimeout)

	stringFlag("time-format", &overrides.TimeFormat)
	stringFlag("clock-format", &overrides.ClockFormat)
	stringFlag("location", &overrides.Location)

	stringFlag("interval-format", &overrides.IntervalFormat)
	stringFlag("locale", &overrides.Locale)
	stringFlag("group-order", &overrides.GroupOrder)
	durationFlag("daily-goal", &overrides.DailyGoal)
	stringFlag("summary-period", &overrides.SummaryPeriod)

	intFlag("project-name-min-length", &overrides.ProjectNameMinLength)
	intFlag("project-name-max-length", &overrides.ProjectNameMaxLength)

	durationFlag("app-timeout", &overrides.Timeout)
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		overrides.Verbose = &verbose
	}
	stringFlag("log-level", &overrides.LogLevel)
	stringFlag("log-format", &overrides.LogFormat)

	return overrides
}

// loadConfig layers defaults, config file, environment and flags
func (r *RootCommand) loadConfig() (*config.Config, error) {
	loader := config.NewLoader()
	if r.configFile != "" {
		loader = config.NewLoaderWithFile(r.configFile)
	}
	return loader.LoadWithOverrides(r.getOverridesFromFlags())
}

// open loads the configuration and opens the API once per process
func (r *RootCommand) open(cmd *cobra.Command) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	logging.Init(loggingOptions(cfg))

	businessAPI, closeAPI, err := r.factory(cfg)
	if err != nil {
		return nil, err
	}

	r.config = cfg
	r.closeAPI = closeAPI
	r.app = NewApp(businessAPI, cfg, cmd.OutOrStdout())
	return r.app, nil
}

// loggingOptions derives the logger setup, verbose output lowers the level
// to info
func loggingOptions(cfg *config.Config) logging.Options {
	level := cfg.Application.LogLevel
	if cfg.Application.Verbose && (level == "" || level == "warn" || level == "error") {
		level = "info"
	}
	if logging.DebugEnabled() {
		level = "debug"
	}
	return logging.Options{Level: level, Format: cfg.Application.LogFormat}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// run opens the API and bounds the command with the application timeout
func (r *RootCommand) run(fn func(ctx context.Context, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.open(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return fn(ctx, app, args)
	}
}

// joinArgs lets project names be given without quotes
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newProjectCmd(),
		r.newInCmd(),
		r.newOutCmd(),
		r.newIntervalCmd("register", "Mark a time interval as registered",
			func(c *IntervalCommand) func(context.Context, string) error { return c.Register }),
		r.newIntervalCmd("unregister", "Clear the registered mark of a time interval",
			func(c *IntervalCommand) func(context.Context, string) error { return c.Unregister }),
		r.newIntervalCmd("remove", "Remove a time interval",
			func(c *IntervalCommand) func(context.Context, string) error { return c.Remove }),
		r.newTimesheetCmd(),
		r.newExportCmd(),
		r.newStatusCmd(),
	)
}

func (r *RootCommand) newProjectCmd() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var description string
	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a project",
		Long:  "Add a project. Names are unique, ignoring case.",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewProjectCommand(app).Add(ctx, joinArgs(args), description)
		}),
	}
	addCmd.Flags().StringVarP(&description, "description", "d", "", "Project description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewProjectCommand(app).List(ctx)
		}),
	}

	removeCmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove a project and all of its time intervals",
		Long:  "Remove a project and all of its time intervals. This cannot be undone.",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewProjectCommand(app).Remove(ctx, joinArgs(args))
		}),
	}

	projectCmd.AddCommand(addCmd, listCmd, removeCmd)
	return projectCmd
}

func (r *RootCommand) newInCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "in [project]",
		Short: "Clock in on a project",
		Long: `Start a time interval for a project.

A project can only be clocked in once at a time. Use --at to clock in at an
earlier time of today.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewClockCommand(app).In(ctx, joinArgs(args), at)
		}),
	}
	cmd.Flags().StringVar(&at, "at", "", "Clock in at this time of today, e.g. 08:15")
	return cmd
}

func (r *RootCommand) newOutCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "out [project]",
		Short: "Clock out from a project",
		Long: `Stop the active time interval of a project.

Use --at to clock out at another time of today. The time must not be before
the clock in.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewClockCommand(app).Out(ctx, joinArgs(args), at)
		}),
	}
	cmd.Flags().StringVar(&at, "at", "", "Clock out at this time of today, e.g. 17:30")
	return cmd
}

func (r *RootCommand) newIntervalCmd(name, short string, action func(*IntervalCommand) func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [id]",
		Short: short,
		Long:  short + ". Interval ids are listed by the timesheet command.",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return action(NewIntervalCommand(app))(ctx, args[0])
		}),
	}
}

func (r *RootCommand) newTimesheetCmd() *cobra.Command {
	var query services.TimesheetQuery
	cmd := &cobra.Command{
		Use:   "timesheet [project]",
		Short: "Show the time of a project per day",
		Long: `Show the time of a project per day.

Every day is compared against the daily goal, "9.12 (+1.12)" is an hour and
seven minutes over an eight hour goal. Active intervals count up to now.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewTimesheetCommand(app).Execute(ctx, joinArgs(args), query)
		}),
	}
	cmd.Flags().BoolVar(&query.HideRegistered, "hide-registered", false, "Leave registered intervals out")
	cmd.Flags().IntVar(&query.Offset, "offset", 0, "Skip this many days")
	cmd.Flags().IntVar(&query.Limit, "limit", 0, "Show at most this many days, 0 shows all")
	return cmd
}

func (r *RootCommand) newExportCmd() *cobra.Command {
	var format string
	var hideRegistered bool
	cmd := &cobra.Command{
		Use:   "export [project]",
		Short: "Export the time intervals of a project",
		Long: `Export the time intervals of a project.

Supported formats:
  csv - Comma-separated values format

Example:
  worker export Worker --hide-registered > worker.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewExportCommand(app).Execute(ctx, joinArgs(args), format, hideRegistered)
		}),
	}
	cmd.Flags().StringVar(&format, "format", "csv", "Output format")
	cmd.Flags().BoolVar(&hideRegistered, "hide-registered", false, "Leave registered intervals out")
	return cmd
}

func (r *RootCommand) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [project]",
		Short: "Show the clock activity of projects",
		Long: `Show whether projects are clocked in and their time in the summary period.

The summary period is day, week or month, see --summary-period.`,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewStatusCommand(app).Execute(ctx, joinArgs(args))
		}),
	}
}
