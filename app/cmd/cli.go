package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/configs"
	"github.com/Rakhulsr/rainy-catalog/app/db/fakers"
	"github.com/Rakhulsr/rainy-catalog/app/db/seeders"
	"github.com/Rakhulsr/rainy-catalog/app/models/migrations"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// app bundles what every database command needs.
type app struct {
	env    configs.ENV
	logger *zap.Logger
	db     *gorm.DB
}

func bootstrap() (*app, error) {
	env := configs.LoadEnv()
	logger, err := configs.NewLogger(env)
	if err != nil {
		return nil, err
	}
	db, err := configs.OpenConnection(env, logger)
	if err != nil {
		return nil, err
	}
	return &app{env: env, logger: logger, db: db}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}

func withApp(action func(ctx context.Context, c *cli.Command, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		return action(ctx, c, a)
	}
}

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "rainy",
		Usage: "Rainy filters catalog backend",
		// Without a subcommand the server starts.
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Flags:  serveFlags(),
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					if err := migrations.AutoMigrate(a.db.WithContext(ctx)); err != nil {
						return err
					}
					fmt.Fprintln(c.Root().Writer, "Migration complete")
					return nil
				}),
			},
			{
				Name:  "create-sample-products",
				Usage: "Create the Rainy FL sample products with their specifications",
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					report, err := seeders.CreateSampleProducts(ctx, a.db, a.logger)
					if err != nil {
						return err
					}
					out := c.Root().Writer
					for _, name := range report.SpecificationTypesCreated {
						fmt.Fprintf(out, "Created specification type: %s\n", name)
					}
					for _, title := range report.ProductsCreated {
						fmt.Fprintf(out, "Created product: %s\n", title)
					}
					for _, title := range report.ProductsExisting {
						fmt.Fprintf(out, "Product already exists: %s\n", title)
					}
					fmt.Fprintf(out, "Added %d specifications. Sample products ready.\n", report.SpecificationsCreated)
					return nil
				}),
			},
			{
				Name:  "clear-sample-products",
				Usage: "Delete the Rainy FL products, their specifications and orphaned specification types",
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					report, err := seeders.ClearSampleProducts(ctx, a.db, a.logger)
					if err != nil {
						return err
					}
					out := c.Root().Writer
					if report.ProductsDeleted == 0 {
						fmt.Fprintf(out, "No '%s' products found.\n", seeders.SampleProductPrefix)
						return nil
					}
					fmt.Fprintf(out, "Deleted %d specifications and %d '%s' products.\n",
						report.SpecificationsDeleted, report.ProductsDeleted, seeders.SampleProductPrefix)
					if len(report.OrphanSpecificationTypeNames) > 0 {
						fmt.Fprintf(out, "Also deleted orphaned specification types: %s\n",
							strings.Join(report.OrphanSpecificationTypeNames, ", "))
					}
					return nil
				}),
			},
			{
				Name:  "fake-contacts",
				Usage: "Insert fake contact messages for admin testing",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 10, Usage: "number of contacts"},
				},
				Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
					count := int(c.Int("count"))
					created, err := fakers.SeedContacts(ctx, repositories.NewContactRepository(a.db), count)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.Root().Writer, "Created %d fake contacts\n", created)
					return nil
				}),
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: ".env.new_keys", Usage: "file to write the keys to, empty to only print"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.WriteSessionKeys(c.Root().Writer, c.String("out"))
				},
			},
			{
				Name:      "hash-password",
				Usage:     "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
				ArgsUsage: "<password>",
				Action: func(ctx context.Context, c *cli.Command) error {
					password := c.Args().First()
					if password == "" {
						return fmt.Errorf("password argument is required")
					}
					hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.Root().Writer, "ADMIN_PASSWORD_HASH=%s\n", hash)
					return nil
				},
			},
		},
	}
}

func RunCli(ctx context.Context, args []string) error {
	cmd := NewCommand()
	cmd.Writer = os.Stdout
	return cmd.Run(ctx, args)
}
