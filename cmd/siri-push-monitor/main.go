package main

import (
	"flag"
	"fmt"
	"os"

	lib "github.com/theoremus-urban-solutions/siri-push-monitor"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: config.yml)")
	flag.Parse()

	cfg, err := lib.LoadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := lib.InitLogging(cfg.Log)

	store := lib.NewMessageStore(cfg.History.MaxPerSubscription)
	registry := lib.NewSubscriptionRegistry(cfg.Upstream, log)
	service := lib.NewPushService(store, registry, log)

	server := lib.NewServer(cfg, service, registry, log)
	server.Start()
	server.AwaitShutdown()
}
