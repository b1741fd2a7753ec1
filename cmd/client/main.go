package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dkomarov/garagehub/internal/client/cli"
	"github.com/dkomarov/garagehub/internal/client/config"
)

func main() {

	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
