package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/l1jgo/regentimer/internal/config"
	"github.com/l1jgo/regentimer/internal/core/event"
	coresys "github.com/l1jgo/regentimer/internal/core/system"
	"github.com/l1jgo/regentimer/internal/data"
	"github.com/l1jgo/regentimer/internal/handler"
	"github.com/l1jgo/regentimer/internal/host"
	"github.com/l1jgo/regentimer/internal/scripting"
	"github.com/l1jgo/regentimer/internal/system"
	"github.com/l1jgo/regentimer/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m          NPC Regen Timer  v0.1.0          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(3, 46-len(title)-1)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	v := fmt.Sprint(value)
	dotsLen := max(3, 42-len(label)-len(v))
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), v)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/regentimer.toml"
	if p := os.Getenv("REGENTIMER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(os.Args) > 1 {
		cfg.Scenario.Path = os.Args[1]
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load scenario and scripts
	printSection("Data")
	scenario, err := data.LoadScenario(cfg.Scenario.Path)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	printStat("Scenario", cfg.Scenario.Path)
	printStat("Pulses", scenario.TotalPulses())

	luaEngine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	interval := system.FixedInterval(cfg.Timer.RegenIntervalSeconds)
	if luaEngine.HasRegenInterval() {
		def := cfg.Timer.RegenIntervalSeconds
		interval = func(npcID int32) int { return luaEngine.RegenInterval(npcID, def) }
		printOK("Lua regen_interval override loaded")
	}
	printStat("Regen interval (s)", cfg.Timer.RegenIntervalSeconds)
	printStat("Stale cleanup (ticks)", cfg.Timer.StaleThreshold())
	fmt.Println()

	// 4. Session state, wired to a fresh host feed
	ws := world.NewState()
	bus := event.NewBus()
	defer resetSession(ws, bus)
	feed := host.NewFeed(bus)
	deps := &handler.Deps{World: ws, Log: log}

	// 5. Create systems and register with runner
	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(bus, deps))
	runner.Register(system.NewRegenSystem(ws, feed, cfg.Timer, interval, log))
	runner.Register(system.NewOverlaySystem(ws, feed, system.LogRenderer{Log: log}, cfg.Timer))
	runner.Register(system.NewCleanupSystem(ws, cfg.Timer.IndexThreshold(), log))

	// 6. Run host stream and game loop until the scenario ends or a signal arrives
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	frames := make(chan host.Frame)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return host.Stream(ctx, host.NewReplay(scenario), cfg.Tick.Rate, frames)
	})
	g.Go(func() error {
		return gameLoop(ctx, frames, feed, runner)
	})

	err = g.Wait()
	log.Info("session ended",
		zap.Int("pulses", ws.Pulse()),
		zap.Int("timers", ws.Timers.Len()),
		zap.Int("bindings", ws.Resolver.Len()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// resetSession drops queued events and all tracking state.
func resetSession(ws *world.State, bus *event.Bus) {
	bus.Reset()
	ws.Reset()
}

// gameLoop owns world state: every frame is applied and simulated here, one
// pulse at a time.
func gameLoop(ctx context.Context, frames <-chan host.Frame, feed *host.Feed, runner *coresys.Runner) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			feed.Apply(f)
			runner.Tick(world.PulseDuration)
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
