package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sethgrid/petkeeper/internal/art"
	"github.com/sethgrid/petkeeper/internal/conditions"
	"github.com/sethgrid/petkeeper/internal/config"
	"github.com/sethgrid/petkeeper/internal/discovery"
	"github.com/sethgrid/petkeeper/internal/feed"
	"github.com/sethgrid/petkeeper/internal/game"
	"github.com/sethgrid/petkeeper/internal/health"
	"github.com/sethgrid/petkeeper/internal/journal"
	"github.com/sethgrid/petkeeper/internal/pet"
	"github.com/sethgrid/petkeeper/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const Version = "v1.0.0"

var (
	configPath string
	savesDir   string
	petType    string
	seed       uint64
	verbose    bool

	// clock is swapped out by tests.
	clock game.Clock = game.RealClock{}
)

var rootCmd = &cobra.Command{
	Use:           "petkeeper",
	Short:         "PetKeeper - raise a virtual dog, cat or bunny from your terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&savesDir, "saves", "", "Saves directory (default: nearest saves/ directory)")
	rootCmd.PersistentFlags().StringVar(&petType, "pet", "", "Which pet to use: dog, cat or bunny")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed for rewards (0 seeds from the clock)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(vetCmd)
	rootCmd.AddCommand(giftCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(reviveCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every command works against once flags and config are
// resolved.
type env struct {
	cfg     config.Config
	session *game.Session
	log     *slog.Logger
	out     io.Writer
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the config file and lets flags override it. The default
// config path may be missing; an explicit --config may not.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, required := configPath, true
	if path == "" {
		path, required = config.DefaultPath, false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if savesDir != "" {
		cfg.SavesDir = savesDir
	}
	if cfg.SavesDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg.SavesDir, _, err = discovery.FindSavesDir(cwd)
		if err != nil {
			return config.Config{}, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if petType != "" {
		s, err := pet.ParseSpecies(petType)
		if err != nil {
			return config.Config{}, err
		}
		cfg.DefaultPet, cfg.HasDefaultPet = s, true
	}
	return cfg, nil
}

// openEnv resolves config and opens a session. Only long-running play
// sessions are counted towards the player's statistics.
func openEnv(cmd *cobra.Command, counted bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := newLogger(cmd.ErrOrStderr())

	var j journal.Journal = journal.Nop{}
	if cfg.JournalPath != "" {
		path := cfg.JournalPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.SavesDir, path)
		}
		sj, err := journal.Open(cmd.Context(), path)
		if err != nil {
			return nil, err
		}
		j = sj
	}

	s, err := game.Open(cmd.Context(), game.Options{
		SavesDir:     cfg.SavesDir,
		Journal:      j,
		Clock:        clock,
		Rand:         pet.NewRand(cfg.Seed),
		Logger:       log,
		CountSession: counted,
	})
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return &env{cfg: cfg, session: s, log: log, out: cmd.OutOrStdout()}, nil
}

// close closes the session, keeping the first error.
func (e *env) close(err error) error {
	if cerr := e.session.Close(); cerr != nil && err == nil {
		return cerr
	}
	return err
}

// resolvePet picks the pet to work on: --pet, then defaultPet from the
// config, then the only saved slot.
func (e *env) resolvePet() (pet.Species, error) {
	if e.cfg.HasDefaultPet {
		return e.cfg.DefaultPet, nil
	}
	slots, err := e.session.Slots()
	if err != nil {
		return pet.Dog, err
	}
	var saved []pet.Species
	for _, s := range slots {
		if s.Exists {
			saved = append(saved, s.Species)
		}
	}
	switch len(saved) {
	case 0:
		return pet.Dog, fmt.Errorf("no pet found in %s. Run 'petkeeper new <type> <name>' to adopt one: %w",
			e.cfg.SavesDir, storage.ErrMissingSaveFile)
	case 1:
		return saved[0], nil
	default:
		names := make([]string, len(saved))
		for i, s := range saved {
			names[i] = strings.ToLower(s.String())
		}
		return pet.Dog, fmt.Errorf("several pets are saved (%s). Choose one with --pet", strings.Join(names, ", "))
	}
}

func (e *env) loadPet() error {
	species, err := e.resolvePet()
	if err != nil {
		return err
	}
	_, err = e.session.LoadPet(species)
	return err
}

// executeStatefulCommand loads the pet, runs fn and saves the pet again.
// Nothing is saved when fn fails.
func executeStatefulCommand(cmd *cobra.Command, fn func(e *env) error) error {
	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	if err := e.loadPet(); err != nil {
		return e.close(err)
	}
	if err := fn(e); err != nil {
		return e.close(err)
	}
	if err := e.session.SavePet(cmd.Context()); err != nil {
		return e.close(fmt.Errorf("failed to save pet: %w", err))
	}
	return e.close(nil)
}

// actionCommand wraps a session action into a stateful command that reports
// its outcome.
func actionCommand(do func(ctx context.Context, s *game.Session, args []string) (game.ActionOutcome, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return executeStatefulCommand(cmd, func(e *env) error {
			out, err := do(cmd.Context(), e.session, args)
			if err != nil {
				return err
			}
			e.report(out)
			return nil
		})
	}
}

func (e *env) petName() string {
	var name string
	e.session.View(func(p *pet.Pet) { name = p.Name })
	return name
}

// report prints an action outcome.
func (e *env) report(out game.ActionOutcome) {
	r := out.Result
	name := e.petName()
	switch r.Action {
	case pet.ActionFeed:
		if r.Wasted {
			fmt.Fprintf(e.out, "%s sniffed the %s and left it. It went to waste.\n", name, r.Item)
		} else {
			fmt.Fprintf(e.out, "%s ate some %s.\n", name, r.Item)
		}
	case pet.ActionPlay:
		fmt.Fprintf(e.out, "You played with %s!\n", name)
	case pet.ActionSleep:
		fmt.Fprintf(e.out, "%s curled up and fell asleep.\n", name)
	case pet.ActionExercise:
		fmt.Fprintf(e.out, "%s had a good workout.\n", name)
	case pet.ActionVet:
		fmt.Fprintf(e.out, "The vet patched %s up.\n", name)
	case pet.ActionUseItem:
		fmt.Fprintf(e.out, "%s loves the %s!\n", name, r.Item)
	case pet.ActionPurchase:
		fmt.Fprintf(e.out, "Bought %s.\n", r.Item)
	case pet.ActionRevive:
		fmt.Fprintf(e.out, "%s is back on their feet!\n", name)
	}
	if d := describeResult(r); d != "" {
		fmt.Fprintf(e.out, "  %s\n", d)
	}
	e.warn(out.Warnings)
}

func (e *env) warn(ws []conditions.Warning) {
	for _, w := range ws {
		fmt.Fprintf(e.out, "Warning: %s\n", w.Message)
	}
}

// describeResult lists the non-zero deltas of r.
func describeResult(r pet.Result) string {
	var parts []string
	add := func(label string, v int) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", label, v))
		}
	}
	add("health", r.Health)
	add("max health", r.MaxHealth)
	add("happiness", r.Happiness)
	add("fullness", r.Fullness)
	add("energy", r.Energy)
	add("score", r.Score)
	add("coins", r.Earned-r.Spent)
	return strings.Join(parts, ", ")
}

// itemArg joins args so multi-word items work unquoted, and resolves the
// catalogue spelling.
func itemArg(args []string) string {
	item, _ := pet.CanonicalItem(strings.Join(args, " "))
	return item
}

var newCmd = &cobra.Command{
	Use:   "new [type] [name]",
	Short: "Adopt a new pet (dog, cat or bunny)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		species, err := pet.ParseSpecies(args[0])
		if err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")
		force, _ := cmd.Flags().GetBool("force")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		if !force {
			if existing, err := storage.LoadPet(e.cfg.SavesDir, species); err == nil {
				return e.close(fmt.Errorf("%s the %s is already saved. Use --force to replace them",
					existing.Name, strings.ToLower(species.String())))
			}
		}
		if _, err := e.session.NewPet(cmd.Context(), name, species); err != nil {
			return e.close(err)
		}
		if err := e.session.SavePet(cmd.Context()); err != nil {
			return e.close(fmt.Errorf("failed to save pet: %w", err))
		}
		fmt.Fprintf(e.out, "Adopted %s the %s!\n", name, strings.ToLower(species.String()))
		return e.close(nil)
	},
}

func init() {
	newCmd.Flags().Bool("force", false, "Replace an existing pet of the same type")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your pet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output != "text" && output != "yaml" && output != "json" {
			return fmt.Errorf("unknown output format %q (want text, yaml or json)", output)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		if err := e.loadPet(); err != nil {
			return e.close(err)
		}
		var snap pet.Snapshot
		e.session.View(func(p *pet.Pet) {
			if output == "text" {
				printStatus(e.out, p)
			}
			snap = p.Snapshot()
		})
		switch output {
		case "yaml":
			enc := yaml.NewEncoder(e.out)
			enc.SetIndent(2)
			if err := enc.Encode(snap); err != nil {
				return e.close(fmt.Errorf("failed to encode status: %w", err))
			}
			err = enc.Close()
		case "json":
			enc := json.NewEncoder(e.out)
			enc.SetIndent("", "  ")
			err = enc.Encode(snap)
		}
		return e.close(err)
	},
}

func init() {
	statusCmd.Flags().StringP("output", "o", "text", "Output format: text, yaml or json")
}

func printStatus(w io.Writer, p *pet.Pet) {
	status := conditions.DeriveStatus(p)
	pct := health.Percent(p.Stats.Health(), p.Stats.MaxHealth())

	fmt.Fprintf(w, "%s the %s is %s\n\n", p.Name, strings.ToLower(p.Species.String()), status.Primary)
	fmt.Fprintln(w, art.GetStaticArt(p))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "state: %s\n", p.State())
	if len(status.AllOrdered) > 0 {
		fmt.Fprintf(w, "conditions: %s\n", conditions.FormatConditions(status.AllOrdered))
	}
	fmt.Fprintf(w, "health: %d/%d %s %s\n", p.Stats.Health(), p.Stats.MaxHealth(), health.Bar(pct, 10), health.BandFor(pct))
	fmt.Fprintf(w, "happiness: %d\n", p.Stats.Happiness())
	fmt.Fprintf(w, "fullness: %d\n", p.Stats.Fullness())
	fmt.Fprintf(w, "energy: %d\n", p.Stats.Energy())
	fmt.Fprintf(w, "score: %d\n", p.Stats.Score())
	fmt.Fprintf(w, "coins: %d\n", p.Stats.Currency())
	fmt.Fprintf(w, "adopted: %s\n", p.CreatedOn.Format(storage.DateLayout))

	items := p.Inventory.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "inventory: empty")
		return
	}
	fmt.Fprintln(w, "inventory:")
	for _, it := range items {
		fmt.Fprintf(w, "  %-16s x%d\n", it.Name, it.Count)
	}
}

var feedCmd = &cobra.Command{
	Use:   "feed [item]",
	Short: "Feed your pet something from the inventory",
	Args:  cobra.MinimumNArgs(1),
	RunE: actionCommand(func(ctx context.Context, s *game.Session, args []string) (game.ActionOutcome, error) {
		return s.Feed(ctx, itemArg(args))
	}),
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with your pet",
	Args:  cobra.NoArgs,
	RunE: actionCommand(func(ctx context.Context, s *game.Session, _ []string) (game.ActionOutcome, error) {
		return s.Play(ctx)
	}),
}

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Put your pet to bed",
	Args:  cobra.NoArgs,
	RunE: actionCommand(func(ctx context.Context, s *game.Session, _ []string) (game.ActionOutcome, error) {
		return s.Sleep(ctx)
	}),
}

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Exercise your pet",
	Args:  cobra.NoArgs,
	RunE: actionCommand(func(ctx context.Context, s *game.Session, _ []string) (game.ActionOutcome, error) {
		return s.Exercise(ctx)
	}),
}

var vetCmd = &cobra.Command{
	Use:   "vet",
	Short: fmt.Sprintf("Take your pet to the vet (%d coins)", pet.VetCost),
	Args:  cobra.NoArgs,
	RunE: actionCommand(func(ctx context.Context, s *game.Session, _ []string) (game.ActionOutcome, error) {
		return s.VisitVet(ctx)
	}),
}

var giftCmd = &cobra.Command{
	Use:   "gift [item]",
	Short: "Give your pet a gift from the inventory",
	Args:  cobra.MinimumNArgs(1),
	RunE: actionCommand(func(ctx context.Context, s *game.Session, args []string) (game.ActionOutcome, error) {
		return s.UseItem(ctx, itemArg(args))
	}),
}

var buyCmd = &cobra.Command{
	Use:   "buy [item]",
	Short: "Buy an item from the shop",
	Args:  cobra.MinimumNArgs(1),
	RunE: actionCommand(func(ctx context.Context, s *game.Session, args []string) (game.ActionOutcome, error) {
		return s.Buy(ctx, itemArg(args))
	}),
}

var reviveCmd = &cobra.Command{
	Use:   "revive",
	Short: "Bring your pet back to full health",
	Args:  cobra.NoArgs,
	RunE: actionCommand(func(ctx context.Context, s *game.Session, _ []string) (game.ActionOutcome, error) {
		return s.Revive(ctx)
	}),
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "List what the shop sells",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		catalog := e.session.Shop()

		// Without a pet, show everything.
		if err := e.loadPet(); err != nil {
			e.log.Debug("showing full catalogue", slog.Any("reason", err))
			for _, l := range catalog.Items() {
				fmt.Fprintf(e.out, "%-16s %4d  %s\n", l.Item, l.Price, l.Category)
			}
			return e.close(nil)
		}

		e.session.View(func(p *pet.Pet) {
			fmt.Fprintf(e.out, "You have %d coins.\n\n", p.Stats.Currency())
			for _, l := range catalog.ForSpecies(p.Species) {
				fmt.Fprintf(e.out, "%-16s %4d  %-12s owned %d\n", l.Item, l.Price, l.Category, p.Inventory.Count(l.Item))
			}
		})
		return e.close(nil)
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename [name]",
	Short: "Give your pet a new name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeStatefulCommand(cmd, func(e *env) error {
			old := e.petName()
			name := strings.Join(args, " ")
			if err := e.session.Rename(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%s is now called %s.\n", old, name)
			return nil
		})
	},
}

var tickCmd = &cobra.Command{
	Use:   "tick [n]",
	Short: "Let time pass for n ticks (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return fmt.Errorf("tick count must be a positive number, got %q", args[0])
			}
			n = v
		}

		return executeStatefulCommand(cmd, func(e *env) error {
			tk := game.NewTicker(e.session, e.cfg.TickInterval, e.log)
			var last game.TickOutcome
			tk.OnTick = func(ev game.TickEvent) {
				last = ev.Outcome
				e.warn(ev.Outcome.Warnings)
			}
			for i := 0; i < n; i++ {
				done, err := tk.Step(cmd.Context())
				if err != nil {
					return err
				}
				if done {
					break
				}
			}
			fmt.Fprintf(e.out, "%s is %s after %d tick(s).\n", e.petName(), last.State, tk.Ticks())
			if !last.Alive {
				fmt.Fprintln(e.out, "Use 'petkeeper revive' to bring them back.")
			}
			return nil
		})
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Keep your pet running in the foreground until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, _ := cmd.Flags().GetDuration("for")
		interval, _ := cmd.Flags().GetDuration("interval")
		listen, _ := cmd.Flags().GetString("listen")

		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		if err := e.session.CheckAllowed(); err != nil {
			return e.close(err)
		}
		if err := e.loadPet(); err != nil {
			return e.close(err)
		}
		if interval <= 0 {
			interval = e.cfg.TickInterval
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if duration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, duration)
			defer cancel()
		}

		var hub *feed.Hub
		if listen != "" {
			hub = feed.NewHub(e.log)
			go hub.Run(ctx)
			mux := http.NewServeMux()
			mux.Handle("/ws", hub)
			srv := &http.Server{Addr: listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					e.log.Error("feed server failed", slog.Any("error", err))
				}
			}()
			defer srv.Shutdown(context.WithoutCancel(ctx))
			e.log.Info("streaming ticks", slog.String("url", "ws://"+listen+"/ws"))
		}

		tk := game.NewTicker(e.session, interval, e.log)
		tk.SaveEvery = 10
		tk.OnTick = func(ev game.TickEvent) {
			e.session.View(func(p *pet.Pet) {
				fmt.Fprintf(e.out, "[%d] %s is %s  health %d  happiness %d  fullness %d  energy %d\n",
					ev.Number, p.Name, ev.Outcome.State,
					p.Stats.Health(), p.Stats.Happiness(), p.Stats.Fullness(), p.Stats.Energy())
				if hub != nil {
					hub.Publish(feed.NewUpdate(ev.Number, p, ev.Outcome.Warnings))
				}
			})
			e.warn(ev.Outcome.Warnings)
		}

		runErr := tk.Run(ctx)
		if errors.Is(runErr, game.ErrNotAllowed) {
			fmt.Fprintln(e.out, "Play time is over for today.")
			runErr = nil
		}
		// Save with a fresh context so an interrupt still saves.
		if err := e.session.SavePet(context.WithoutCancel(ctx)); err != nil && runErr == nil {
			runErr = fmt.Errorf("failed to save pet: %w", err)
		}
		return e.close(runErr)
	},
}

func init() {
	runCmd.Flags().Duration("for", 0, "Stop after this long (0 runs until interrupted)")
	runCmd.Flags().Duration("interval", 0, "Time between ticks (default from config, "+config.DefaultTickInterval.String()+")")
	runCmd.Flags().String("listen", "", "Stream every tick to WebSocket clients at ws://ADDR/ws")
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List saved pets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		slots, err := e.session.Slots()
		if err != nil {
			return e.close(err)
		}
		for _, slot := range slots {
			species := strings.ToLower(slot.Species.String())
			if !slot.Exists {
				fmt.Fprintf(e.out, "%-6s (empty)\n", species)
				continue
			}
			p, err := storage.LoadPet(e.cfg.SavesDir, slot.Species)
			if err != nil {
				fmt.Fprintf(e.out, "%-6s unreadable: %v\n", species, err)
				continue
			}
			fmt.Fprintf(e.out, "%-6s %s, %s, score %d\n", species, p.Name, p.State(), p.Stats.Score())
		}
		return e.close(nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		if e.cfg.JournalPath == "" {
			fmt.Fprintln(e.out, "The journal is disabled. Set journalPath in "+config.DefaultPath+" to enable it.")
			return e.close(nil)
		}
		entries, err := e.session.History(cmd.Context(), limit)
		if err != nil {
			return e.close(err)
		}
		for _, en := range entries {
			what := en.Kind
			if en.Name != "" {
				what += " " + en.Name
			}
			fmt.Fprintf(e.out, "%s  %-16s %s (%s) %s\n",
				en.Time.Local().Format(time.DateTime), what, en.PetName, strings.ToLower(en.Species), en.State)
		}
		return e.close(nil)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of entries to show")
}
