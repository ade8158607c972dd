package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/yunbow/line-faq-bot/src/bot"
	"github.com/yunbow/line-faq-bot/src/config"
	"github.com/yunbow/line-faq-bot/src/data"
	"github.com/yunbow/line-faq-bot/src/discord"
	"github.com/yunbow/line-faq-bot/src/faq"
	"github.com/yunbow/line-faq-bot/src/line"
	"github.com/yunbow/line-faq-bot/src/store"
	"github.com/yunbow/line-faq-bot/src/subscribers"
	"github.com/yunbow/line-faq-bot/src/webserver"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	cfg, err := config.Load(os.Getenv("FAQBOT_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, seedPath := openStore(ctx, cfg)

	resolver, err := faq.NewResolver(st).WithSnapshotCache(ctx, cfg.FAQCacheTTL)
	if err != nil {
		log.Fatalf("faq: %v", err)
	}
	defer resolver.Close()

	if seedPath != "" {
		go func() {
			if err := store.WatchSeed(ctx, seedPath, st, resolver.Invalidate); err != nil {
				log.Printf("seed: watcher stopped: %v", err)
			}
		}()
	}

	botCfg := bot.Config{
		Resolver:  resolver,
		Directory: subscribers.NewDirectory(st),
		Notifier: line.NewClient(line.ClientConfig{
			Endpoint:     cfg.LineAPIBase,
			ChannelToken: cfg.ChannelToken,
			Timeout:      cfg.OutboundTimeout,
			Attempts:     cfg.OutboundAttempts,
		}),
		WelcomeID: cfg.WelcomeFAQID,
	}

	if cfg.RedisURL != "" {
		rdb, err := data.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer rdb.Close()
		botCfg.EventLog = data.NewEventLog(rdb, cfg.EventDedupeTTL)
		botCfg.Observers = append(botCfg.Observers, data.NewSubscriberStream(rdb, cfg.SubscriberStream))
	}

	if cfg.DiscordToken != "" {
		feed, err := discord.NewFeed(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			log.Fatalf("%v", err)
		}
		botCfg.Observers = append(botCfg.Observers, feed)
	}

	router := webserver.New(*cfg, bot.NewDispatcher(botCfg), st)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("FAQ bot listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}

// openStore picks the backend from the DSN. For the memory backend it also
// returns the seed file to watch.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, string) {
	if path, ok := cfg.MemorySeedPath(); ok {
		mem := store.NewMemoryStore()
		seed, err := store.ReadSeedFile(path)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if err := seed.Apply(ctx, mem); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("memory store seeded with %d faq entries from %s", len(seed.FAQ), path)
		return mem, path
	}

	db, err := data.ConnectMySQL(cfg.StoreDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := data.Migrate(db); err != nil {
		log.Fatalf("db: %v", err)
	}
	settings, err := data.LoadSettings(db)
	if err != nil {
		log.Printf("settings: %v (using environment only)", err)
	}
	config.ApplySettings(cfg, settings.Get)
	return store.NewSQLStore(db), ""
}
