package config_test

import (
	"context"
	"fmt"
	"log"

	"github.com/sagarc03/softserve/config"
)

func ExampleLoad() {
	// Load with defaults only (no config file)
	cfg, err := config.Load(nil, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("HTTP: %s, FTP: %s\n", cfg.HTTP.Addr(), cfg.FTP.Addr())
	// Output: HTTP: 127.0.0.1:5001, FTP: 127.0.0.1:5002
}

func ExampleWithContext() {
	cfg, _ := config.Load(nil, nil, nil)

	// Store config in context
	ctx := config.WithContext(context.Background(), cfg)

	// Retrieve later (e.g., in a subcommand)
	retrieved, err := config.FromContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retrieved port: %d\n", retrieved.HTTP.Port)
	// Output: Retrieved port: 5001
}
