// Package service holds the gym's business rules. Each multi-statement rule
// runs inside a single database transaction; events and metrics are emitted
// only after the transaction committed.
package service

import (
	"context"
	"time"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/monitoring"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Deps are the collaborators shared by all services.
type Deps struct {
	Rules     config.Rules
	Location  *time.Location
	Publisher events.Publisher
	Metrics   *monitoring.Metrics
	Clock     func() time.Time
	// PlanCache lets request-scoped MembershipService values share one
	// catalog cache. Nil gets a private cache.
	PlanCache *cache.Cache
}

// withDefaults fills unset collaborators so a zero Deps is usable.
func (d Deps) withDefaults() Deps {
	if d.Rules.ConsistencyThreshold == 0 {
		d.Rules = config.DefaultRules()
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{}
	}
	if d.Metrics == nil {
		d.Metrics = monitoring.Get()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.PlanCache == nil {
		d.PlanCache = NewPlanCache()
	}
	return d
}

// NewPlanCache returns the cache used for the plan catalog.
func NewPlanCache() *cache.Cache {
	return cache.New(5*time.Minute, 10*time.Minute)
}

func (d Deps) now() time.Time {
	return d.Clock().In(d.Location)
}

func (d Deps) today() string {
	return d.now().Format(DateLayout)
}

func (d Deps) publish(ctx context.Context, eventType string, userID uint, payload interface{}) {
	d.Publisher.Publish(ctx, events.New(eventType, userID, payload))
}

// forUpdate adds a row lock on table for dialects that support it. SQLite
// serializes writers on its own.
func forUpdate(tx *gorm.DB, table string) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: table}})
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
