package utils

import (
	"time"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// SessionTTL is the server-side session lifetime (24 hours)
	SessionTTL = 24 * time.Hour

	// SessionJanitorInterval is how often the in-memory session store
	// sweeps expired entries
	SessionJanitorInterval = 5 * time.Minute
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Billing constants
const (
	CZKCurrency = "CZK"

	// DepotCodeMaxLen caps generated depot short codes
	DepotCodeMaxLen = 20
)
