// applixy-submit posts a new listing to the store, the way the app's
// Add Opportunity / Add Mentor forms do.
//
//	applixy-submit -collection scholarship \
//	    -field name="Gates Scholarship" \
//	    -field organization="Gates Foundation" \
//	    -field award_amount=5000
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"applixy/internal/config"
	"applixy/internal/domain"
	"applixy/internal/identity"
	"applixy/internal/publisher"
	"applixy/internal/storage/mongodb"
	"applixy/internal/submit"
)

type fieldFlags map[string]any

func (f fieldFlags) String() string { return fmt.Sprint(map[string]any(f)) }

// Set parses key=value pairs. Integer values are submitted as numbers
// so award amounts keep their numeric shape in the store.
func (f fieldFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("field must be key=value, got %q", s)
	}
	if n, err := strconv.Atoi(value); err == nil {
		f[key] = n
		return nil
	}
	f[key] = value
	return nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	collection := flag.String("collection", domain.CollectionScholarship, "target collection")
	fields := fieldFlags{}
	flag.Var(fields, "field", "listing field as key=value (repeatable)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := mongodb.Connect(ctx, cfg.Store.URI, cfg.Store.Database, logger)
	if err != nil {
		logger.Error("failed to connect to document store", "error", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	var pub submit.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	gateway := submit.NewGateway(store, identity.NewAnonymous(), pub, logger)

	id, err := gateway.Submit(ctx, *collection, map[string]any(fields))
	if err != nil {
		logger.Error("submission failed", "collection", *collection, "error", err)
		os.Exit(1)
	}

	fmt.Println(id)
}
