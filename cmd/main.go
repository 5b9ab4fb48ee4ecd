// Package main is the entry point for the freight-rate-service application.
//
// @title           Freight Rate Service API
// @version         1.0.0
// @description     API for rating parcel shipments against carrier rate cards.
//
//	Quotes resolve the destination zone from the origin's postal zone table, price the
//	chargeable weight, apply conditional surcharges and the fuel surcharge, or return
//	the unauthorized package fee when a package exceeds carrier limits.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/freight-rate-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Rates
// @tag.description Rate calculation and product listing
//
// @tag.name        History
// @tag.description Recorded quotes
//
// @tag.name        Cache
// @tag.description Cache maintenance
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/freight-rate-service/docs" // swagger docs

	"github.com/guttosm/freight-rate-service/config"
	"github.com/guttosm/freight-rate-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	server := app.NewServer(application.Router, cfg.Server.Port,
		app.WithRequestTimeout(cfg.Server.RequestTimeout),
	)

	if err := server.Run(); err != nil {
		log.Error().Err(err).Msg("Server error")
	}
}
