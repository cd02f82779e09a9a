package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Crear o promover un administrador",
	Long: `Crea un usuario con rol admin. Si el email ya existe se promueve a admin
sin tocar su contraseña.

Ejemplo:
  almacenctl seed-admin --email admin@empresa.com --password 's3cr3t0'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminEmail == "" || adminPassword == "" {
			return errors.New("--email y --password son obligatorios")
		}
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		authUC := auth.NewAuthUseCase(postgres.NewUserRepository(e.pool), auth.JWTConfig{
			Secret:     e.cfg.JWT.Secret,
			ExpMinutes: e.cfg.JWT.Expiration,
			Issuer:     e.cfg.JWT.Issuer,
		})
		created, err := authUC.EnsureAdmin(cmd.Context(), adminEmail, adminPassword, adminName)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ administrador %s creado\n", adminEmail)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s ya existía; rol admin asegurado\n", adminEmail)
		}
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email del administrador")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Contraseña (mínimo 6 caracteres)")
	seedAdminCmd.Flags().StringVar(&adminName, "name", "Administrador", "Nombre visible")
	rootCmd.AddCommand(seedAdminCmd)
}
