package main

import (
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"tax-engine/internal/config"
	"tax-engine/internal/handler"
	"tax-engine/internal/interview"
	"tax-engine/internal/rulepack"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}

	graph, err := interview.TaxGraph()
	if err != nil {
		log.Fatal("question graph invalid", zap.Error(err))
	}

	registry := rulepack.New(rulepack.Config{
		Dir:       cfg.RulePackDir,
		Staleness: cfg.PackStaleness,
	}, log)

	api := handler.New(interview.New(graph), interview.NewStore(), registry, log)

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Info("tax engine starting", zap.String("addr", addr))
	if err := fasthttp.ListenAndServe(addr, api.Handle); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
