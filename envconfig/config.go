// config.go - Haupt-Konfigurationsfunktionen
//
// Dieses Modul enthaelt:
// - LogLevel: Gibt Log-Level zurueck (AGG_DEBUG)
// - Executor: Gibt den Standard-Executor zurueck (AGG_EXECUTOR)
// - NumParallel: Gibt die Worker-Anzahl zurueck (AGG_NUM_PARALLEL)
// - Var: Liest eine Environment-Variable
//
// Weitere Konfigurationen sind ausgelagert:
// - config_features.go: Batch- und Tabellen-Einstellungen
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via AGG_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("AGG_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Executor gibt den Namen des Standard-Executors zurueck
// Konfigurierbar via AGG_EXECUTOR
// Default: parallel
func Executor() string {
	if s := strings.ToLower(executorName()); s != "" {
		return s
	}

	return "parallel"
}

var executorName = String("AGG_EXECUTOR")

// NumParallel gibt die Anzahl paralleler Kernel-Worker zurueck
// Konfigurierbar via AGG_NUM_PARALLEL
// 0 oder ungesetzt = GOMAXPROCS
func NumParallel() int {
	if n := numParallel(); n > 0 {
		return int(n)
	}

	return runtime.GOMAXPROCS(0)
}

var numParallel = Uint("AGG_NUM_PARALLEL", 0)

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
