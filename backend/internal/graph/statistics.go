package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"
)

// ComputeStatistics runs the nine fixed counting queries concurrently and
// merges them into one snapshot. Driver sessions are not safe for concurrent
// use, so each counter gets its own read session. Join-all semantics: the
// first failing counter cancels the rest and fails the whole call, no
// partial snapshot is returned.
func (r *Repository) ComputeStatistics(ctx context.Context) (*Statistics, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	stats := &Statistics{}
	counters := []struct {
		key    string
		cypher string
		dest   *int64
	}{
		{"countUsers", `MATCH (r:User) WHERE r.deleted IS NULL OR r.deleted = false RETURN count(r) AS countUsers`, &stats.CountUsers},
		{"countPosts", `MATCH (r:Post) WHERE r.deleted IS NULL OR r.deleted = false RETURN count(r) AS countPosts`, &stats.CountPosts},
		{"countComments", `MATCH (r:Comment) WHERE r.deleted IS NULL OR r.deleted = false RETURN count(r) AS countComments`, &stats.CountComments},
		{"countNotifications", `MATCH (r:Notification) WHERE r.deleted IS NULL OR r.deleted = false RETURN count(r) AS countNotifications`, &stats.CountNotifications},
		{"countOrganizations", `MATCH (r:Organization) WHERE r.deleted IS NULL OR r.deleted = false RETURN count(r) AS countOrganizations`, &stats.CountOrganizations},
		{"countProjects", `MATCH (r:Project) WHERE r.deleted IS NULL OR r.deleted = false RETURN count(r) AS countProjects`, &stats.CountProjects},
		{"countInvites", `MATCH (r:Invite) WHERE r.wasUsed IS NULL OR r.wasUsed = false RETURN count(r) AS countInvites`, &stats.CountInvites},
		{"countFollows", `MATCH (:User)-[r:FOLLOWS]->(:User) RETURN count(r) AS countFollows`, &stats.CountFollows},
		{"countShouts", `MATCH (:User)-[r:SHOUTED]->(:Post) RETURN count(r) AS countShouts`, &stats.CountShouts},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, counter := range counters {
		counter := counter
		g.Go(func() error {
			session := r.sessions.Session(gctx, neo4j.AccessModeRead)
			record, err := CollectOne(gctx, session, counter.cypher, nil)
			if err != nil {
				return fmt.Errorf("count query %s failed: %w", counter.key, err)
			}
			// Each goroutine writes a distinct field; Wait is the sync point.
			*counter.dest = getInt64(record, counter.key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}
