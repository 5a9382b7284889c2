package engine

import "errors"

var (
	// ErrTooFewSites indicates a splitting sweep over fewer than 2 sites.
	ErrTooFewSites = errors.New("engine: splitting sweep needs at least 2 sites")

	// ErrNoSites indicates an engine built over an empty site collection.
	ErrNoSites = errors.New("engine: empty site collection")
)
