package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
)

var cleanupDays int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Mantenimiento del log de operaciones",
}

var logsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Eliminar entradas antiguas del log",
	Long: `Elimina las entradas del log de operaciones con más de N días.
Sin --days se usa AUDIT_RETENTION_DAYS.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		audit := usecase.NewAuditUseCase(postgres.NewOperationLogRepository(e.pool), e.log, e.cfg.Audit.RetentionDays)
		defer audit.Close()

		n, err := audit.Cleanup(cmd.Context(), cleanupDays)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %d entradas eliminadas\n", n)
		return nil
	},
}

func init() {
	logsCleanupCmd.Flags().IntVar(&cleanupDays, "days", 0, "Retención en días (0 = configurada)")
	logsCmd.AddCommand(logsCleanupCmd)
	rootCmd.AddCommand(logsCmd)
}
