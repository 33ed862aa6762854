// Command actinrings-monitor serves a small HTTP/WebSocket surface that
// fans out live order-parameter frames pushed to it by a running MC or
// US driver, for dashboards or ad-hoc inspection during a long run.
package main

import (
	"log"
	"net/http"

	"github.com/Biochemical-Networks/actinringsmc/internal/cli"
	"github.com/Biochemical-Networks/actinringsmc/internal/ring/monitor"
)

func main() {
	cfg := loadServerConfig()
	logger := cli.NewLogger(cfg.LogLevel)

	mon := monitor.NewMonitor()
	defer mon.Close()

	handler := monitor.NewHandler(mon, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handler.HandleHealth)
	mux.HandleFunc("/status", handler.HandleStatus)
	mux.HandleFunc("/ws", handler.HandleWS)
	mux.HandleFunc("/publish", handler.HandlePublish)

	logger.Infof("actinrings-monitor listening on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, mux))
}
