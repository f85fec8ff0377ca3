// Package cli implements the save4dream command-line interface. Every
// command except version opens the configured store, loads the player's
// session, runs one action and detaches.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/save4dream/internal/catalog"
	"github.com/mesh-intelligence/save4dream/internal/content"
	"github.com/mesh-intelligence/save4dream/internal/game"
	"github.com/mesh-intelligence/save4dream/internal/memory"
	"github.com/mesh-intelligence/save4dream/internal/paths"
	"github.com/mesh-intelligence/save4dream/internal/sqlite"
	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// sysError marks an error as a system failure (exit code 2). Anything else
// a command returns is a user error.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemError(format string, args ...any) error {
	return &sysError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// offline marks commands that run without loading a game.
var offline = map[string]string{"offline": "true"}

func needsSession(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return cmd.Annotations["offline"] != "true"
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool
}

// app carries what the running command needs. It is built in
// PersistentPreRunE and torn down when Run returns.
type app struct {
	flags   rootFlags
	config  *viper.Viper
	logger  *zap.Logger
	store   types.Store
	catalog *catalog.Catalog
	session *game.Session
	dataDir string
	backend string
}

// rootCmd creates the top-level "save4dream" command with global flags
// and all subcommands registered.
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "save4dream",
		Short: "A money game for kids: earn, learn, save and spend wisely",
		Long: `save4dream is a financial-literacy game. Complete missions and lessons to
earn coins, deposit them toward a savings goal, and learn to tell needs
from wants in the shop.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/save4dream)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/save4dream)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite or memory")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newStatusCmd(a),
		newMissionCmd(a),
		newBankCmd(a),
		newShopCmd(a),
		newLessonCmd(a),
		newScenarioCmd(a),
		newGoalsCmd(a),
		newAchievementsCmd(a),
		newMilestonesCmd(a),
		newJourneyCmd(a),
		newHintCmd(a),
		newAnalysisCmd(a),
		newTipCmd(a),
		newResetCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// Run executes one command line and detaches the store however the command
// ends.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	a := &app{logger: zap.NewNop()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer func() {
		if terr := a.teardown(); err == nil {
			err = terr
		}
	}()
	return root.ExecuteContext(ctx)
}

// Execute runs the process command line and exits with the matching code.
func Execute() {
	err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(ExitCode(err))
}

// setup loads configuration, builds the logger, attaches the store and
// loads the session.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if !needsSession(cmd) {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError("resolve config dir: %w", err)
	}
	a.config, err = loadConfig(configDir)
	if err != nil {
		return systemError("load config: %w", err)
	}

	a.logger = newLogger(a.flags.verbose || a.config.GetBool(cfgKeyVerbose), cmd.ErrOrStderr())

	a.dataDir, err = paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return systemError("resolve data dir: %w", err)
	}

	backend := a.flags.backend
	if backend == "" {
		backend = a.config.GetString(cfgKeyBackend)
	}
	cfg := types.Config{
		Backend:      backend,
		DataDir:      a.dataDir,
		SyncStrategy: a.config.GetString(cfgKeySyncStrategy),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.backend = cfg.Backend
	a.store = newStore(cfg.Backend)
	if err := a.store.Attach(cfg); err != nil {
		a.store = nil
		return systemError("attach %s store: %w", cfg.Backend, err)
	}
	a.logger.Debug("store attached", zap.String("backend", cfg.Backend), zap.String("data_dir", a.dataDir))

	a.catalog, err = catalog.Default()
	if err != nil {
		return systemError("load catalog: %w", err)
	}

	a.session, err = game.NewSession(game.Options{
		Store:        a.store,
		Catalog:      a.catalog,
		Content:      a.contentProvider(cmd.Context()),
		Logger:       a.logger,
		InitialStats: initialStats(a.config),
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	a.session.Load()
	return nil
}

func (a *app) teardown() error {
	defer func() { _ = a.logger.Sync() }()
	if a.store == nil {
		return nil
	}
	store := a.store
	a.store = nil
	if err := store.Detach(); err != nil {
		return systemError("detach store: %w", err)
	}
	return nil
}

// newLogger builds a zap logger with the production encoder writing to w.
// Only warnings and errors are shown unless verbose is set.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(config.EncoderConfig), zapcore.AddSync(w), config.Level)
	return zap.New(core)
}

func newStore(backend string) types.Store {
	if backend == types.BackendMemory {
		return memory.NewStore()
	}
	return sqlite.NewBackend()
}

// contentProvider uses Gemini when an API key is configured and the static
// fallback content otherwise.
func (a *app) contentProvider(ctx context.Context) *content.Provider {
	static := content.NewStatic(a.catalog.Fallback())
	key := a.config.GetString(cfgKeyAPIKey)
	if key == "" {
		return content.NewProvider(nil, static, a.logger)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	gen, err := content.NewGenAI(ctx, key, a.config.GetString(cfgKeyModel))
	if err != nil {
		a.logger.Warn("content generation unavailable, using fallback", zap.Error(err))
		return content.NewProvider(nil, static, a.logger)
	}
	return content.NewProvider(gen, static, a.logger)
}
