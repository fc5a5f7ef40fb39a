package main

import (
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"sei-agent-engine/internal/agent"
	"sei-agent-engine/internal/config"
	"sei-agent-engine/internal/crm"
	"sei-agent-engine/internal/logger"
	"sei-agent-engine/internal/search"
	"sei-agent-engine/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(false, true)
		bootLog.Fatal().Err(err).Msg("configuration invalid")
	}
	log := logger.New(cfg.LogDebug, cfg.LogPretty)

	persona, err := agent.LoadPersona(cfg.PersonaPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load persona spec")
	}

	searcher := search.NewClient(cfg.SerpAPIKey, cfg.SearchLocation, cfg.SearchTimeout)
	assembler := agent.NewAssembler(searcher, log)
	signer := crm.NewSigner(cfg.CRMSigningSecret)
	gateway := crm.NewGateway(cfg.CRMTargetURL, signer, cfg.CRMTimeout, log)
	orchestrator := agent.NewOrchestrator(
		openai.NewClient(cfg.OpenAIAPIKey),
		cfg.OpenAIModel,
		persona,
		assembler,
		gateway,
		cfg.ModelTimeout,
		log,
	)

	s := server.NewServer(cfg, orchestrator, log)
	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("sei-agent-engine listening")
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
