package main

import (
	"context"
	"flag"
	"os"
	"time"

	"blog-cms/cmd/internal/bootstrap"
	"blog-cms/internal/logger"
	"blog-cms/config"
	"blog-cms/feeder"
)

// importer fetches one RSS/Atom feed and stores its new items as draft posts.
// Run it while the api server is stopped when using the file driver.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	feedURL := flag.String("feed", cfg.Import.FeedURL, "RSS/Atom feed url")
	limit := flag.Int("limit", cfg.Import.Limit, "max items to import")
	author := flag.String("author", cfg.Import.Author, "author for items without one")
	fetchArticles := flag.Bool("fetch-articles", cfg.Import.FetchArticles, "fill missing body/image from each item's page")
	flag.Parse()

	if *feedURL == "" {
		logger.Log.Error("no feed url: set import.feed_url, IMPORT_FEED_URL or -feed")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo, closeRepo, err := bootstrap.OpenPostRepository(ctx, cfg.Storage, config.GetBasePath())
	if err != nil {
		logger.Log.Errorf("failed to open post storage: %v", err)
		os.Exit(1)
	}
	defer closeRepo(context.Background())

	bus, err := bootstrap.OpenEventBus(ctx, cfg.Events)
	if err != nil {
		logger.Log.Errorf("failed to create kafka producer: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	items, err := feeder.FetchRssFeeds(ctx, *feedURL, *limit, feeder.Options{})
	if err != nil {
		logger.Log.Errorf("fetch rss error for %s: %v", *feedURL, err)
		os.Exit(1)
	}

	if *fetchArticles {
		enrichItems(ctx, items, func(ctx context.Context, link string) (feeder.Article, error) {
			return feeder.FetchArticle(ctx, link, feeder.Options{Timeout: 15 * time.Second})
		})
	}

	im := &importer{repo: repo, bus: bus, topic: cfg.Events.Topic, now: time.Now}
	added, err := im.run(ctx, items, *author)
	if err != nil {
		logger.Log.Errorf("import failed: %v", err)
		os.Exit(1)
	}

	logger.InfoWithFields("import finished", logger.Fields{
		"feed":    *feedURL,
		"fetched": len(items),
		"added":   len(added),
	})
}
