// Package msgs holds the messages shared between the root model and its
// views. It sits below every view package so any of them can emit these
// without importing the root.
package msgs

import (
	"github.com/jkariuki/dealdrop/internal/auth"
	"github.com/jkariuki/dealdrop/internal/deal"
)

// Route identifies a top-level view. Navigation messages are
// fire-and-forget: the root model switches views and drops the rest.
type Route string

const (
	RouteFeed       Route = "feed"
	RouteDeal       Route = "deal"
	RouteAuth       Route = "auth"
	RouteVendor     Route = "vendor"
	RouteCreateDeal Route = "create-deal"
)

// NavigateMsg asks the root model to switch views. DealID is set for
// RouteDeal only.
type NavigateMsg struct {
	Route  Route
	DealID string
}

// DealsLoaded is sent when the catalogue has been selected from the store,
// at startup and on every background refresh.
type DealsLoaded struct {
	Deals []deal.Deal
	Err   error
}

// SessionChanged is sent when the identity provider's session changes.
// A nil session means signed out.
type SessionChanged struct {
	Session *auth.Session
}

// DealUpvoted asks the root model to persist a vote cast on the feed.
type DealUpvoted struct {
	DealID string
}

// CartAdded is sent when the detail view adds items to the cart tally.
type CartAdded struct {
	Quantity int
	Total    int
}

// StatusMsg carries a transient line for the footer, typically an upstream
// error surfaced verbatim.
type StatusMsg struct {
	Text  string
	IsErr bool
}
