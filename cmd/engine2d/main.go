package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/engine2d/internal/component"
	"github.com/l1jgo/engine2d/internal/config"
	"github.com/l1jgo/engine2d/internal/core/ecs"
	"github.com/l1jgo/engine2d/internal/core/event"
	coresys "github.com/l1jgo/engine2d/internal/core/system"
	"github.com/l1jgo/engine2d/internal/data"
	"github.com/l1jgo/engine2d/internal/level"
	"github.com/l1jgo/engine2d/internal/system"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m  %-41s\033[36;1m│\033[0m\n", name)
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("ENGINE2D_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if p := startProfile(cfg.Profile); p != nil {
		defer p.Stop()
		log.Info("profiling enabled", zap.String("mode", cfg.Profile.Mode), zap.String("path", cfg.Profile.Path))
	}

	printBanner(cfg.Engine.Name)

	// 3. Registry, bus and systems
	regLog := log.Named("ecs")
	if !cfg.Registry.LogUpdates && regLog.Core().Enabled(zapcore.DebugLevel) {
		regLog = regLog.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))
	}
	registry := ecs.NewRegistry(ecs.Options{
		InitialCapacity: cfg.Registry.InitialCapacity,
		Logger:          regLog,
	})
	bus := event.NewBus()
	runner := coresys.NewRunner(registry, bus, log.Named("runner"))
	system.Install(registry, bus, runner, log.Named("system"))

	// 4. Content
	printSection("Content")
	var prefabs *data.PrefabTable
	if cfg.Content.Prefabs != "" {
		prefabs, err = data.LoadPrefabTable(cfg.Content.Prefabs)
		if err != nil {
			return fmt.Errorf("prefabs: %w", err)
		}
		printStat("Prefabs", prefabs.Count())
	}
	if cfg.Content.Level != "" {
		ents, err := level.NewLoader(log.Named("level")).Load(cfg.Content.Level, registry, prefabs)
		if err != nil {
			return fmt.Errorf("level: %w", err)
		}
		printStat("Entities", len(ents))
	}
	printStat("Systems", len(runner.Systems()))
	printOK(fmt.Sprintf("frame loop (every %s)", cfg.Engine.FrameRate))
	fmt.Println()

	// 5. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	keys := make(chan string, 16)
	go readKeys(os.Stdin, keys)

	ticker := time.NewTicker(cfg.Engine.FrameRate)
	defer ticker.Stop()

	start := time.Now()
	last := start
	for {
		select {
		case now := <-ticker.C:
			runner.Tick(now.Sub(last))
			last = now
			if cfg.Engine.MaxFrames > 0 && runner.Frame() >= uint64(cfg.Engine.MaxFrames) {
				summary(log, registry, runner, start)
				return nil
			}
		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			// Handlers subscribed at the start of the current frame stay
			// registered until the next one begins.
			event.Emit(bus, event.KeyPressedEvent{Key: key})
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			summary(log, registry, runner, start)
			return nil
		}
	}
}

// readKeys forwards one key name per input line until EOF.
func readKeys(f *os.File, out chan<- string) {
	defer close(out)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if k := strings.TrimSpace(sc.Text()); k != "" {
			out <- strings.ToLower(k)
		}
	}
}

func summary(log *zap.Logger, r *ecs.Registry, runner *coresys.Runner, start time.Time) {
	fields := []zap.Field{
		zap.Uint64("frames", runner.Frame()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("entities", r.Len()),
		zap.Int("projectiles", len(r.GetEntitiesByGroup(system.GroupProjectiles))),
		zap.Int("enemies", len(r.GetEntitiesByGroup(system.GroupEnemies))),
	}
	if p := r.GetEntityByTag(system.TagPlayer); p.IsValid() && ecs.HasComponent[component.Health](r, p) {
		fields = append(fields, zap.Int("player_health", ecs.GetComponent[component.Health](r, p).Current))
	}
	log.Info("engine stopped", fields...)
}

func startProfile(cfg config.ProfileConfig) interface{ Stop() } {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "allocs":
		mode = profile.MemProfileAllocs
	case "block":
		mode = profile.BlockProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return nil
	}
	return profile.Start(mode, profile.ProfilePath(cfg.Path), profile.NoShutdownHook, profile.Quiet)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		lvl = zapcore.InfoLevel
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
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}
