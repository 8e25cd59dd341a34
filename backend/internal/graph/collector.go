package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Record is one row of query results as a field-name-to-value mapping.
type Record map[string]any

// RowStream is the subset of a Neo4j result cursor the collector consumes.
type RowStream interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

// Session is a single-use handle to a query execution context. It must be
// closed exactly once after its queries complete; Collect takes ownership of
// the session it is handed and closes it on every exit path.
type Session interface {
	Run(ctx context.Context, cypher string, params map[string]any) (RowStream, error)
	Close(ctx context.Context) error
}

// SessionFactory acquires a new session bound to the underlying graph store.
type SessionFactory interface {
	Session(ctx context.Context, mode neo4j.AccessMode) Session
}

// driverSessions adapts a Neo4j driver to the SessionFactory interface.
type driverSessions struct {
	driver neo4j.DriverWithContext
}

func (d driverSessions) Session(ctx context.Context, mode neo4j.AccessMode) Session {
	return neoSession{s: d.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode})}
}

type neoSession struct {
	s neo4j.SessionWithContext
}

func (n neoSession) Run(ctx context.Context, cypher string, params map[string]any) (RowStream, error) {
	result, err := n.s.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (n neoSession) Close(ctx context.Context) error {
	return n.s.Close(ctx)
}

// Collect runs a query and materializes the result stream into ordered
// records, projecting every named field of each row as-is. The session is
// consumed: it is closed whether the query succeeds or fails.
func Collect(ctx context.Context, session Session, cypher string, params map[string]any) ([]Record, error) {
	defer session.Close(ctx)

	stream, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	var records []Record
	for stream.Next(ctx) {
		row := stream.Record()
		record := make(Record, len(row.Keys))
		for _, key := range row.Keys {
			value, _ := row.Get(key)
			record[key] = value
		}
		records = append(records, record)
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("failed to consume result: %w", err)
	}

	return records, nil
}

// CollectOne runs a query expected to return at most one row. When the
// stream yields more than one record the last one wins; an empty stream
// yields an empty record, not an error.
func CollectOne(ctx context.Context, session Session, cypher string, params map[string]any) (Record, error) {
	records, err := Collect(ctx, session, cypher, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return Record{}, nil
	}
	return records[len(records)-1], nil
}
