package main

import (
	"flag"
	"log"

	"github.com/tuannm99/typewire/internal"
	"github.com/tuannm99/typewire/server/schemawire"
)

func main() {
	cfgPath := flag.String("config", "", "Path to yaml config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	sc := schemawire.ServerConfig{Addr: "127.0.0.1:8877", Debug: *debug}

	if *cfgPath != "" {
		cfg, err := internal.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		sc.Addr = cfg.Server.Addr
		sc.Debug = sc.Debug || cfg.Server.Debug
	}
	if *addr != "" {
		sc.Addr = *addr
	}

	if err := schemawire.Run(sc); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
