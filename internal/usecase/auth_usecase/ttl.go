package auth

import (
	"regexp"
	"strconv"
	"time"
)

// 解釈できない時の既定値
const DefaultRefreshTTL = 24 * time.Hour

var expiryPattern = regexp.MustCompile(`^(\d+)([hdm])$`)

// ParseExpiry は "15m" "24h" "30d" 形式を解釈する。mは分。
// 解釈できなければ24時間。
func ParseExpiry(s string) time.Duration {
	return ParseExpiryWithDefault(s, DefaultRefreshTTL)
}

func ParseExpiryWithDefault(s string, fallback time.Duration) time.Duration {
	m := expiryPattern.FindStringSubmatch(s)
	if m == nil {
		return fallback
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return fallback
	}

	switch m[2] {
	case "h":
		return time.Duration(n) * time.Hour
	case "d":
		return time.Duration(n) * 24 * time.Hour
	case "m":
		return time.Duration(n) * time.Minute
	}
	return fallback
}
