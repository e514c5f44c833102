package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"campustix/internal/adapters/cli"
	"campustix/internal/adapters/discord"
	"campustix/internal/application"
	"campustix/internal/config"
	"campustix/internal/infrastructure/broker"
	"campustix/internal/infrastructure/database"
	"campustix/internal/infrastructure/i18n"
	"campustix/internal/infrastructure/metrics"
	"campustix/internal/infrastructure/payment"
	"campustix/internal/ports/output"
	"campustix/pkg/tz"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run wires the application and executes args. Deferred cleanups run before
// the exit code is returned.
func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("❌ Configuration invalide: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock, err := tz.Load(cfg.Timezone)
	if err != nil {
		log.Printf("❌ Fuseau horaire: %v", err)
		return 1
	}
	translator := i18n.NewTranslator(cfg.DefaultLocale)

	if len(args) > 0 && args[0] == "migrate" {
		// migrate runs before the pool so an empty database is fine
		app := cli.New(nil, nil, translator, clock, os.Stdout, cli.Hooks{
			Migrate: func(down bool) error {
				return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, down)
			},
		}, cfg.DefaultLocale)
		return exitCode(app.Run(ctx, args))
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns)
	if err != nil {
		log.Printf("❌ Erreur lors de l'initialisation de la base de données: %v", err)
		return 1
	}
	defer pool.Close()
	store := database.NewStore(pool)

	var publishers broker.Fanout
	if cfg.AMQPURL != "" {
		b, err := broker.NewBroker(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("⚠️ RabbitMQ indisponible, notifications désactivées: %v", err)
		} else {
			defer b.Close()
			publishers = append(publishers, b)
		}
	}
	if cfg.DiscordToken != "" {
		a, err := discord.NewAnnouncer(cfg.DiscordToken, cfg.AnnounceChannelID, translator, cfg.DefaultLocale, clock)
		if err != nil {
			log.Printf("⚠️ %v", err)
		} else {
			publishers = append(publishers, a)
		}
	}

	var gateway output.PaymentGateway = payment.Accept{}
	if cfg.StripeSecretKey != "" {
		gateway = payment.NewStripe(cfg.StripeSecretKey, cfg.PaymentCurrency)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewRecorder(registry)

	eventUC := application.NewEventService(store, clock, publishers, recorder)
	ticketUC := application.NewTicketService(store, clock, gateway, publishers, recorder)

	hooks := cli.Hooks{
		MetricsAddr: cfg.MetricsAddr,
		ServeMetrics: func(ctx context.Context, addr string) error {
			registry.MustRegister(metrics.NewInventoryCollector(eventUC, ticketUC, clock))
			return metrics.Serve(ctx, addr, metrics.NewRouter(registry))
		},
	}
	app := cli.New(eventUC, ticketUC, translator, clock, os.Stdout, hooks, cfg.DefaultLocale)
	return exitCode(app.Run(ctx, args))
}

// exitCode maps a command error to the process status: 2 for usage errors.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrUsage):
		return 2
	default:
		return 1
	}
}
