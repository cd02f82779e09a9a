package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

var (
	// Flags globales
	dbURL   string
	verbose bool
)

// rootCmd comando base
var rootCmd = &cobra.Command{
	Use:   "almacenctl",
	Short: "Herramientas de operación para almacen-api",
	Long: `almacenctl ejecuta tareas de mantenimiento contra la base PostgreSQL de almacen-api.

Comandos:
  schema apply      - Crear/actualizar las tablas (idempotente)
  seed-admin        - Crear o promover un administrador
  import-products   - Alta masiva de productos desde CSV
  logs cleanup      - Purgar el log de operaciones antiguo

La conexión se toma de DATABASE_URL / DB_* (igual que la API) o de --db.`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "URL de PostgreSQL (por defecto DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Salida detallada")
}

// env configuración, logger y pool compartidos por los subcomandos.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func (e *env) Close() { e.pool.Close() }

// openEnv carga la configuración y abre el pool. Los comandos solo operan sobre PostgreSQL.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbURL != "" {
		cfg.DB.Driver = config.DriverPostgres
		cfg.DB.DatabaseURL = dbURL
	}
	if cfg.DB.Driver != config.DriverPostgres {
		return nil, fmt.Errorf("almacenctl requiere DB_DRIVER=postgres (actual: %s)", cfg.DB.Driver)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, pool: pool}, nil
}
