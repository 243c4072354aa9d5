// FILE: env.go
// Package main – Environment helpers for the scalper.
//
// This file provides:
//   1) Small helpers to read environment variables with sane defaults
//      (strings, ints, floats, bools, durations).
//   2) loadBotEnv, which hydrates the process env from ENV_FILE (default
//      .env) without overriding variables that are already set.
//   3) initLogging, which applies LOG_LEVEL and LOG_FORMAT to logrus.
//
// Notes:
//   • The bot never requires `export $(cat .env ...)`.
//   • A missing env file is not an error; the process env is used as-is.

package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// --------- Env helpers (used across files) ---------

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
func getEnvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "y", "yes":
		return true
	case "0", "false", "n", "no":
		return false
	default:
		return def
	}
}
func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvDuration reads a bare integer in unit (COOLDOWN_SEC=60) or a Go
// duration string (COOLDOWN_SEC=90s, POLL_INTERVAL_MS=1.5s). Negative or
// unparsable values fall back to def.
func getEnvDuration(key string, def, unit time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		if n < 0 {
			return def
		}
		return time.Duration(n) * unit
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

// --------- .env loader ---------

// loadBotEnv reads ENV_FILE (default .env). godotenv.Load never overrides
// variables already present in the environment.
func loadBotEnv() {
	path := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("env: %s not found, relying on process env", path)
			return
		}
		log.Printf("env: %s: %v", path, err)
		return
	}
	log.Printf("env: loaded %s", path)
}

// --------- Logging ---------

func initLogging() {
	if getEnv("LOG_FORMAT", "text") == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	lvl, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		log.Printf("env: bad LOG_LEVEL, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
