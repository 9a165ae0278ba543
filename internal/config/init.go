package config

import (
	"os"

	"github.com/SyntropyNet/syntropy-ping/internal/env"
	"github.com/SyntropyNet/syntropy-ping/internal/logger"
)

const maxPort = 65535

func Init() {
	var tmpval uint

	initDebugLevel()

	initUint(&tmpval, "PING_EXPORTER_PORT", 0)
	if tmpval <= maxPort {
		cache.exporterPort = uint16(tmpval)
	} else {
		logger.Warning().Println(pkgName, "invalid exporter port", tmpval, "- exporter disabled")
	}

	logger.Debug().Println(pkgName, "log level:", cache.debugLevel, "exporter port:", cache.exporterPort)
}

func Close() {
	// Anything needed to be closed or destroyed at the end of program, goes here
}

func initDebugLevel() {
	var level string
	initString(&level, "PING_LOG_LEVEL", env.DefaultLogLevel)
	cache.debugLevel = logger.ParseLevel(level, logger.WarningLevel)
	logger.SetupGlobalLoger(cache.debugLevel, os.Stderr)
}
