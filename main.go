package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/lguibr/bollywood"
	"golang.org/x/net/websocket"

	"github.com/lguibr/maglab/server"
	"github.com/lguibr/maglab/sim"
	"github.com/lguibr/maglab/utils"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	log := utils.NewLogger(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	engine := bollywood.NewEngine()
	defer engine.Shutdown(5 * time.Second)

	broadcasterPID := engine.Spawn(bollywood.NewProps(sim.NewBroadcasterProducer(log)))
	simPID := engine.Spawn(bollywood.NewProps(sim.NewSimActorProducer(cfg, broadcasterPID, log)))

	wsServer := server.NewServer(engine, simPID, broadcasterPID, log)

	http.Handle("/subscribe", websocket.Handler(wsServer.HandleSubscribe()))
	http.HandleFunc("/state", wsServer.HandleState())

	log.Infow("maglab listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}
