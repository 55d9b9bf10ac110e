package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"f1strategydashboard/pkg/config"
	"f1strategydashboard/pkg/openf1"
	"f1strategydashboard/pkg/pubsub"
	"f1strategydashboard/pkg/webserver"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	cfg := config.Load()
	for _, err := range cfg.Validate() {
		log.Printf("config warning: %s\n", err.Error())
	}

	client := openf1.NewClient(cfg.BaseAPIURL)
	resets := pubsub.NewPubSub[string]()

	ticker := time.NewTicker(cfg.CacheReset)
	tickerDone := make(chan bool)

	go func() {
		for {
			select {
			case <-tickerDone:
				return
			case t := <-ticker.C:
				fmt.Println("Resetting cached OpenF1 responses at: ", t)
				client.ResetCache()
				resets.Publish(pubsub.TopicCacheReset, pubsub.TopicCacheReset)
			}
		}
	}()

	// blocks until an interrupt or termination signal arrives
	webserver.NewManager(cfg.Address, client, resets).Serve()

	ticker.Stop()
	tickerDone <- true
}
