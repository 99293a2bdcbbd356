// @title           Broadcast API
// @version         1.0
// @description     Рассылки сообщений пользователям по контекстам сайта (документация Swagger).
// @contact.name    Broadcast team
// @contact.email   support@example.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"fmt"
	"os"

	_ "broadcast_backend/docs"
	"broadcast_backend/internal/app"

	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
	appName = "broadcast"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	// путь к конфигу передается через окружение, его читает config.Load
	applyConfigPath := func() error {
		if configPath == "" {
			return nil
		}
		return os.Setenv("CONFIG_PATH", configPath)
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigPath(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Site broadcast message service",
		Long: `Broadcast serves time-boxed announcements scoped to the site,
a course category or a single course, and remembers which users
have dismissed them.`,
		RunE: serve.RunE,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(serve)
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and seed the system context",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigPath(); err != nil {
				return err
			}
			app.Migrate()
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}
