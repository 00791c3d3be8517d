package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/alkis-osm-coverage/internal/config"
	"github.com/alkis-osm-coverage/internal/correction"
	"github.com/alkis-osm-coverage/internal/dataset"
	"github.com/alkis-osm-coverage/internal/db"
	"github.com/alkis-osm-coverage/internal/etl"
	"github.com/alkis-osm-coverage/internal/pipeline"
	"github.com/alkis-osm-coverage/internal/web"
)

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "coverage",
		Short: "ALKIS/OSM address coverage engine",
		Long:  `Tracks how completely OSM covers the ALKIS address registry per district, with reviewer corrections, coverage history and trend analytics`,
	}

	rootCmd.AddCommand(createImportCmd())
	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createRunCmd creates the batch comparison subcommand.
func createRunCmd() *cobra.Command {
	var (
		runDate  string
		workers  int
		debugOut bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one full comparison over all districts",
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			runner := pipeline.NewRunner(
				dataset.NewPostgresSource(conn.DB),
				correction.NewStore(config.CorrectionsDir()),
				pipeline.Config{
					OutputDir:   config.OutputDir(),
					HistoryPath: config.HistoryPath(),
					RunDate:     runDate,
					Workers:     workers,
				},
			)

			stats, err := runner.Run(debugOut)
			if err != nil {
				log.Fatalf("Run failed: %v", err)
			}

			fmt.Printf("Run date:        %s\n", stats.Date)
			fmt.Printf("Districts:       %d (%d failed)\n", stats.Districts, len(stats.FailedDistricts))
			fmt.Printf("Addresses:       %d total, %d missing\n", stats.Total, stats.Missing)
			fmt.Printf("Duration:        %v\n", stats.Duration)
			for _, name := range stats.FailedDistricts {
				fmt.Printf("  failed: %s\n", name)
			}
		},
	}

	runCmd.Flags().StringVar(&runDate, "date", "", "ISO date for history entries (default: today)")
	runCmd.Flags().IntVar(&workers, "workers", 4, "Number of district workers")
	runCmd.Flags().BoolVar(&debugOut, "debug", false, "Enable debug output")
	return runCmd
}

// createServeCmd creates the API server subcommand.
func createServeCmd() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the correction submission and read APIs",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := web.LoadConfig()
			if port != 0 {
				cfg.Server.Port = port
			}

			var source dataset.Source
			conn, err := db.NewConnection()
			if err != nil {
				log.Printf("No database available, street suggestions disabled: %v", err)
			} else {
				defer conn.Close()
				source = dataset.NewPostgresSource(conn.DB)
			}

			store := correction.NewStore(cfg.Data.CorrectionsDir)
			server := web.NewServer(cfg, store, source)

			log.Printf("Listening on %s:%d", cfg.Server.Host, cfg.Server.Port)
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}

	serveCmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides SERVER_PORT)")
	return serveCmd
}

// createImportCmd creates the snapshot import subcommand.
func createImportCmd() *cobra.Command {
	var (
		alkisCSV string
		osmCSV   string
		debugOut bool
	)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import extracted ALKIS and OSM snapshots into Postgres",
		Run: func(cmd *cobra.Command, args []string) {
			if alkisCSV == "" && osmCSV == "" {
				log.Fatal("Nothing to import: pass --alkis and/or --osm")
			}

			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			p := etl.NewPipeline(conn.DB)
			if err := p.EnsureSchema(); err != nil {
				log.Fatalf("Failed to ensure schema: %v", err)
			}

			if alkisCSV != "" {
				n, err := p.LoadCadastral(debugOut, alkisCSV)
				if err != nil {
					log.Fatalf("ALKIS import failed: %v", err)
				}
				fmt.Printf("Imported %d ALKIS addresses\n", n)
			}
			if osmCSV != "" {
				n, err := p.LoadMapAddresses(debugOut, osmCSV)
				if err != nil {
					log.Fatalf("OSM import failed: %v", err)
				}
				fmt.Printf("Imported %d OSM addresses\n", n)
			}
		},
	}

	importCmd.Flags().StringVar(&alkisCSV, "alkis", "", "ALKIS address CSV")
	importCmd.Flags().StringVar(&osmCSV, "osm", "", "OSM address CSV")
	importCmd.Flags().BoolVar(&debugOut, "debug", false, "Enable debug output")
	return importCmd
}

// createPingCmd creates a command to test database connectivity.
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := db.NewConnection()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer conn.Close()

			fmt.Println("Database connection successful!")

			var count int
			if err := conn.DB.QueryRow("SELECT COUNT(*) FROM alkis_address").Scan(&count); err != nil {
				log.Printf("Error counting alkis_address records: %v", err)
			} else {
				fmt.Printf("ALKIS addresses loaded: %d\n", count)
			}
			if err := conn.DB.QueryRow("SELECT COUNT(*) FROM osm_address").Scan(&count); err != nil {
				log.Printf("Error counting osm_address records: %v", err)
			} else {
				fmt.Printf("OSM addresses loaded: %d\n", count)
			}
		},
	}
}
