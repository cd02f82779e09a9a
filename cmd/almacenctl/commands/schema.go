package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Gestión del esquema de base de datos",
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Crear o actualizar las tablas",
	Long: `Ejecuta el DDL idempotente (CREATE TABLE/INDEX IF NOT EXISTS).
Se puede repetir sin efectos sobre los datos existentes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		if err := postgres.ApplySchema(cmd.Context(), e.pool); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ esquema aplicado")
		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaApplyCmd)
	rootCmd.AddCommand(schemaCmd)
}
