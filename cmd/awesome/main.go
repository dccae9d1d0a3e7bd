package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/example"
	"github.com/dmitrymomot/awesome/example/migrations"
	"github.com/dmitrymomot/awesome/example/models"
	"github.com/dmitrymomot/awesome/middlewares"
	"github.com/dmitrymomot/awesome/pkg/config"
	"github.com/dmitrymomot/awesome/pkg/db"
	"github.com/dmitrymomot/awesome/pkg/logger"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

var (
	// Version is set at build time.
	Version = "dev"

	configFile string

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	methodColor  = color.New(color.FgYellow, color.Bold)
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "awesome",
		Short:         "Awesome blog server",
		Long:          "Runs the awesome blog: HTTP server, database migrations and route listing.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "YAML file overriding environment configuration")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
	serveCmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")

	migrateCmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE:      runMigrate,
	}

	routesCmd := &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		Args:  cobra.NoArgs,
		RunE:  runRoutes,
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print create table statements for the blog models",
		Args:  cobra.NoArgs,
		RunE:  runSchema,
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, routesCmd, schemaCmd)

	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	conn, err := db.Open(ctx, cfg.DB, log)
	if err != nil {
		return err
	}

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := db.Migrate(ctx, conn, cfg.DB, migrations.FS, log); err != nil {
			_ = conn.Close()
			return err
		}
	}

	appCfg := example.Config{Dialect: dialect(cfg.DB), Logger: log, CORSOrigins: cfg.Server.CORSOrigins}
	if cfg.Server.StaticDir != "" {
		appCfg.Assets = os.DirFS(cfg.Server.StaticDir)
	}
	app, err := example.New(conn, appCfg,
		awesome.WithHealthChecks(
			awesome.WithReadinessCheck(cfg.DB.Driver, db.Healthcheck(conn)),
		),
	)
	if err != nil {
		_ = conn.Close()
		return err
	}

	infoColor.Printf("Listening on %s\n", cfg.Server.Addr)
	return app.Run(cfg.Server.Addr,
		awesome.WithContext(ctx),
		awesome.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		awesome.ShutdownHook(db.Shutdown(conn)),
	)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	conn, err := db.Open(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	if len(args) == 1 && args[0] == "down" {
		if err := db.Rollback(ctx, conn, cfg.DB, migrations.FS, log); err != nil {
			return err
		}
		successColor.Println("Rolled back the latest migration")
		return nil
	}

	if err := db.Migrate(ctx, conn, cfg.DB, migrations.FS, log); err != nil {
		return err
	}
	successColor.Println("Migrations applied")
	return nil
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	// Routes are only listed, so no connection is needed.
	app, err := example.New(nil, example.Config{Dialect: dialect(cfg.DB)})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, r := range app.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", methodColor.Sprint(r.Method), r.Path, r.Signature)
	}
	return w.Flush()
}

func runSchema(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	m, err := models.New(dialect(cfg.DB))
	if err != nil {
		return err
	}
	for _, stmt := range m.Schema() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s;\n\n", stmt)
	}
	return nil
}

func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
	return cfg, log, nil
}

func dialect(cfg db.Config) orm.Dialect {
	if cfg.Driver == db.DriverPostgres {
		return orm.Postgres
	}
	return orm.MySQL
}
