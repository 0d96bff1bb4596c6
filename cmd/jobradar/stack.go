package main

import (
	"github.com/jonathan/jobradar/internal/aggregate"
	"github.com/jonathan/jobradar/internal/config"
	"github.com/jonathan/jobradar/internal/sources"
	"github.com/jonathan/jobradar/internal/types"
)

// buildStack assembles the adapters, engine and resolver from configuration.
// Every adapter is always constructed; ones missing credentials report
// themselves unconfigured and the engine skips them quietly.
func buildStack(cfg *config.Config) (*aggregate.Engine, *aggregate.Resolver) {
	remotive := sources.NewRemotive(&sources.RemotiveOptions{TTL: cfg.CacheTTL})
	jsearch := sources.NewJSearch(&sources.JSearchOptions{APIKey: cfg.RapidAPIKey})
	arbeitnow := sources.NewArbeitnow(&sources.ArbeitnowOptions{TTL: cfg.CacheTTL})
	adzuna := sources.NewAdzuna(&sources.AdzunaOptions{
		AppID:  cfg.AdzunaAppID,
		AppKey: cfg.AdzunaAppKey,
	})

	engine := aggregate.NewEngine(cfg.CacheTTL, remotive, jsearch, arbeitnow, adzuna)

	// Adzuna has no detail endpoint; ids without a recognized prefix fall
	// back to a Remotive scan.
	resolver := aggregate.NewResolver(map[types.Source]sources.DetailFetcher{
		types.SourceRemotive:  remotive,
		types.SourceJSearch:   jsearch,
		types.SourceArbeitnow: arbeitnow,
	}, remotive)

	return engine, resolver
}
