package network

import (
	"context"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/events"
	"github.com/travigo/subway/pkg/journeygraph"
	"github.com/travigo/subway/pkg/redis_client"
	"github.com/travigo/subway/pkg/util"
	"github.com/urfave/cli/v2"
)

const defaultPathCacheTTL = "PT90M"

func networkFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:     "network",
			Usage:    "YAML file describing the stations and lines",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "sections",
			Usage: "CSV file of extra line,up,down,distance sections to add after loading",
		},
	}, flags...)
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "network",
		Usage: "Subway lines, shortest paths and fares",
		Subcommands: []*cli.Command{
			{
				Name:  "path",
				Usage: "find the shortest path and fare between two stations",
				Flags: networkFlags(
					&cli.StringFlag{Name: "source", Usage: "source station name", Required: true},
					&cli.StringFlag{Name: "target", Usage: "target station name", Required: true},
					&cli.IntFlag{Name: "age", Usage: "rider age, adult fare when not set"},
					&cli.BoolFlag{Name: "detailed", Usage: "include surcharge and line breakdown"},
				),
				Action: func(c *cli.Context) error {
					network, directory, err := setupNetwork(c)
					if err != nil {
						return err
					}

					sourceID, err := directory.Station(c.String("source"))
					if err != nil {
						return err
					}
					targetID, err := directory.Station(c.String("target"))
					if err != nil {
						return err
					}

					var age *int
					if c.IsSet("age") {
						riderAge := c.Int("age")
						age = &riderAge
					}

					result, err := network.ShortestPath(c.Context, sourceID, targetID, age)
					if err != nil {
						return err
					}

					output, err := result.Render(c.Bool("detailed"))
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, string(output))

					return nil
				},
			},
			{
				Name:  "stations",
				Usage: "list the stations of a line in order",
				Flags: networkFlags(
					&cli.StringFlag{Name: "line", Usage: "line name", Required: true},
				),
				Action: func(c *cli.Context) error {
					network, directory, err := setupNetwork(c)
					if err != nil {
						return err
					}

					lineID, err := directory.Line(c.String("line"))
					if err != nil {
						return err
					}

					stations, err := network.StationsOf(c.Context, lineID)
					if err != nil {
						return err
					}

					for i, station := range stations {
						fmt.Fprintf(c.App.Writer, "%d\t%d\t%s\n", i+1, station.ID, station.Name)
					}

					return nil
				},
			},
			{
				Name:  "export-graph",
				Usage: "write the network graph to neo4j",
				Flags: networkFlags(),
				Action: func(c *cli.Context) error {
					network, _, err := setupNetwork(c)
					if err != nil {
						return err
					}

					snapshot, err := network.Snapshot(c.Context)
					if err != nil {
						return err
					}
					log.Debug().Msg(pretty.Sprint(snapshot))

					driver, err := journeygraph.Connect(c.Context)
					if err != nil {
						return err
					}
					defer driver.Close(c.Context)

					return journeygraph.Export(c.Context, driver, snapshot)
				},
			},
		},
	}
}

func setupNetwork(c *cli.Context) (*Network, *Directory, error) {
	registry := NewMemoryStationRegistry()
	network := New(registry, NewMemoryLineRepository())

	if util.GetEnvironmentVariable("TRAVIGO_REDIS_ADDRESS", "") == "" {
		log.Info().Msg("Skipping Redis setup")
	} else {
		if err := redis_client.Connect(); err != nil {
			return nil, nil, err
		}

		ttl, err := util.GetEnvironmentDuration("TRAVIGO_PATH_CACHE_TTL", defaultPathCacheTTL)
		if err != nil {
			return nil, nil, err
		}
		network.Cache = NewRedisPathCache(redis_client.Client, ttl)

		publisher, err := events.NewQueuePublisher(redis_client.QueueConnection)
		if err != nil {
			return nil, nil, err
		}
		network.Publisher = publisher
	}

	directory, err := loadNetwork(c.Context, network, registry, c.String("network"), c.String("sections"))
	if err != nil {
		return nil, nil, err
	}

	return network, directory, nil
}

func loadNetwork(ctx context.Context, network *Network, registry *MemoryStationRegistry, networkPath string, sectionsPath string) (*Directory, error) {
	networkFile, err := ReadNetworkFile(networkPath)
	if err != nil {
		return nil, err
	}

	directory, err := Load(ctx, network, registry, networkFile)
	if err != nil {
		return nil, err
	}

	if sectionsPath == "" {
		return directory, nil
	}

	sectionsFile, err := os.Open(sectionsPath)
	if err != nil {
		return nil, err
	}
	defer sectionsFile.Close()

	count, err := LoadSectionsCSV(ctx, network, directory, sectionsFile)
	if err != nil {
		return nil, err
	}
	log.Info().Int("sections", count).Str("file", sectionsPath).Msg("Loaded extra sections")

	return directory, nil
}

