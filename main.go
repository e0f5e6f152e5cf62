package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/api"
	"storedash/internal/catalog"
	"storedash/internal/config"
	"storedash/internal/eventbus"
	"storedash/internal/mockapi"
	"storedash/internal/report"
	"storedash/internal/ui"
)

type cli struct {
	Config  string `type:"path" help:"Path to the config file (defaults to the user config dir)."`
	LogFile string `default:"storedash.log" type:"path" help:"File that receives the log."`

	TUI     tuiCmd     `cmd:"" default:"1" help:"Run the interactive dashboard."`
	Report  reportCmd  `cmd:"" help:"Fetch every collection and write a KPI report."`
	MockAPI mockAPICmd `cmd:"" name:"mock-api" help:"Serve an in-memory backend for development."`
}

type tuiCmd struct{}

type reportCmd struct {
	Format string `default:"html" enum:"html,yaml" help:"Report format (html, yaml)."`
	Out    string `short:"o" type:"path" help:"Output file (defaults to stdout)."`
}

type mockAPICmd struct {
	Addr     string `default:":3000" help:"Listen address."`
	Seed     string `type:"existingfile" help:"YAML fixture to start from (defaults to the embedded one)."`
	Products int    `help:"Generate this many extra products."`
	Orders   int    `help:"Generate this many extra orders."`
	RandSeed uint64 `default:"1" help:"Seed for the generated fixtures."`
}

func main() {
	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var c cli
	kctx := kong.Parse(&c,
		kong.Name("storedash"),
		kong.Description("Terminal back-office for a small online shop."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&c),
	)

	// Set up logging
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	err = kctx.Run()
	stop()
	kctx.FatalIfErrorf(err)
}

// loadConfig reads the config file; a missing file yields defaults
func (c *cli) loadConfig(bus eventbus.EventBus) (config.ConfigService, *config.Config, error) {
	svc := config.NewConfigServiceWithBus(c.Config, bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config %s: %w", svc.Path(), err)
	}
	return svc, cfg, nil
}

func newCatalog(bus eventbus.EventBus, cfg *config.Config) (*catalog.Service, error) {
	client, err := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout.Duration,
	})
	if err != nil {
		return nil, err
	}
	cache := catalog.NewQueryCache(cfg.Cache.Size, cfg.Cache.TTL.Duration)
	return catalog.NewService(bus, client, cache, catalog.NewStore()), nil
}

func (t *tuiCmd) Run(ctx context.Context, c *cli) error {
	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc, cfg, err := c.loadConfig(bus)
	if err != nil {
		return err
	}

	// Subscribe to config changes to save automatically
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			saved := *cfg
			saved.UI.Theme = event.Theme
			if err := configSvc.Save(&saved); err != nil {
				log.Printf("Failed to save config: %v", err)
			}
		}
	})

	svc, err := newCatalog(bus, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	// The UI owns its copy; cfg stays read-only for the bus handlers
	uiCfg := *cfg
	uiModel, err := ui.NewModel(bus, &uiCfg)
	if err != nil {
		return err
	}
	defer uiModel.Close()

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Forward catalog events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Printf("Event channel full, dropping event %s", e.Type())
		}
	}
	for _, et := range []eventbus.EventType{
		eventbus.EventLoadStarted,
		eventbus.EventCategoriesLoaded,
		eventbus.EventProductsLoaded,
		eventbus.EventOrdersLoaded,
		eventbus.EventLoadFinished,
		eventbus.EventDeleteCompleted,
		eventbus.EventCategorySaved,
		eventbus.EventProductUpdated,
		eventbus.EventOrderFetched,
		eventbus.EventError,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(et, forward)
	}
	stopped := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-stopped:
				return
			}
		}
	}()

	if os.Getenv("STOREDASH_E2E_TEST") != "" {
		fmt.Println("__READY__")
	}

	log.Printf("Starting UI against %s", cfg.API.BaseURL)
	_, runErr := p.Run()
	close(stopped)
	<-done

	if cfg.UI.AutosaveOnExit {
		final := uiModel.Config()
		if err := configSvc.Save(final); err != nil {
			log.Printf("Failed to save config on exit: %v", err)
		}
	}

	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", runErr)
	}
	log.Printf("UI exited normally")
	return nil
}

func (r *reportCmd) Run(ctx context.Context, c *cli) error {
	_, cfg, err := c.loadConfig(nil)
	if err != nil {
		return err
	}
	svc, err := newCatalog(nil, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := svc.Loader().LoadAll(ctx); err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	doc := report.Build(svc.Store().Snapshot(), cfg.API.BaseURL, time.Now())

	out := os.Stdout
	if r.Out != "" {
		f, err := os.Create(r.Out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", r.Out, err)
		}
		defer f.Close()
		out = f
	}
	if err := report.Write(out, doc, report.Format(r.Format)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if r.Out != "" {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", r.Out)
	}
	return nil
}

func (m *mockAPICmd) Run(ctx context.Context) error {
	seed, err := mockapi.LoadSeed(m.Seed)
	if err != nil {
		return err
	}
	if m.Products > 0 || m.Orders > 0 {
		seed.Grow(m.Products, m.Orders, m.RandSeed)
	}
	fmt.Fprintf(os.Stderr, "Mock API listening on %s%s\n", m.Addr, mockapi.BasePath)
	return mockapi.New(seed).Listen(ctx, m.Addr)
}
