package attest

import (
	"encoding/hex"
	"time"
)

func observeStart() time.Time { return time.Now() }

func sinceSeconds(start time.Time) float64 { return time.Since(start).Seconds() }

func hexString(b []byte) string { return hex.EncodeToString(b) }
