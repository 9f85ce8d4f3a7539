package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Helper functions shared by every loader in this package.

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

// envCents reads a price.  Values outside 1..MaxUint32 come back as 0 so
// Validate rejects them instead of wrapping.
func envCents(k string, d uint32) uint32 {
	n := envInt(k, int(d))
	if n <= 0 || int64(n) > math.MaxUint32 {
		return 0
	}
	return uint32(n)
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
