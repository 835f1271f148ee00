package api

import "time"

// DefaultRequestTimeout is the default timeout for API requests
const DefaultRequestTimeout = 10 * time.Second

// DefaultReloadTimeout bounds a full reload of every topic
const DefaultReloadTimeout = 60 * time.Second

// MaxEventLimit is the largest page size accepted by the event endpoints
const MaxEventLimit = 1000
