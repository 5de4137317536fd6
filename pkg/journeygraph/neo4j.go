package journeygraph

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/util"
)

const defaultNeo4jURI = "neo4j://localhost"
const defaultNeo4jUsername = "neo4j"
const defaultNeo4jDatabase = "neo4j"

func Connect(ctx context.Context) (neo4j.DriverWithContext, error) {
	uri := util.GetEnvironmentVariable("TRAVIGO_NEO4J_URI", defaultNeo4jURI)
	username := util.GetEnvironmentVariable("TRAVIGO_NEO4J_USERNAME", defaultNeo4jUsername)
	password := util.GetEnvironmentVariable("TRAVIGO_NEO4J_PASSWORD", "")

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	err = backoff.RetryNotify(func() error {
		return driver.VerifyConnectivity(ctx)
	}, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("uri", uri).Str("wait", wait.String()).Msg("Neo4j not reachable yet")
	})
	if err != nil {
		driver.Close(ctx)
		return nil, err
	}

	return driver, nil
}

// Export replaces the Station graph in neo4j with the given snapshot, one
// SECTION relationship per section in its up to down direction.
func Export(ctx context.Context, driver neo4j.DriverWithContext, snapshot ctdf.NetworkSnapshot) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: defaultNeo4jDatabase})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, "MATCH (s:Station) DETACH DELETE s", map[string]any{}); err != nil {
			return nil, err
		}

		for _, line := range snapshot.Lines {
			for _, section := range line.Sections {
				_, err := tx.Run(
					ctx, `
					MERGE (u:Station {id: $upid})
					SET u.name = $upname
					MERGE (d:Station {id: $downid})
					SET d.name = $downname
					CREATE (u)-[:SECTION {line: $line, linename: $linename, distance: $distance, surcharge: $surcharge}]->(d)
					`, map[string]any{
						"upid":      int64(section.UpStation.ID),
						"upname":    section.UpStation.Name,
						"downid":    int64(section.DownStation.ID),
						"downname":  section.DownStation.Name,
						"line":      int64(line.ID),
						"linename":  line.Name,
						"distance":  section.Distance,
						"surcharge": line.Surcharge,
					})
				if err != nil {
					return nil, err
				}
			}
		}

		return nil, nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("lines", len(snapshot.Lines)).Int("sections", snapshot.SectionCount()).Msg("Exported network graph to neo4j")

	return nil
}
