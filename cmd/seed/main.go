// Command seed creates a user and imports recipes for it from a gzipped
// JSON-lines fixture. It reads the same environment as the API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recipe-api/internal/config"
	"recipe-api/internal/fixture"
	"recipe-api/internal/model"
	"recipe-api/internal/repository"
	"recipe-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Import recipe fixtures for a user",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Required: true,
				Usage:    "Owner email; the user is created if missing",
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Required: true,
				Usage:    "Password for a newly created owner",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Display name for a newly created owner",
			},
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Fixture path (gzipped JSON lines); relative to S3_PREFIX when reading from S3",
			},
			&cli.BoolFlag{
				Name:  "s3",
				Usage: "Read the fixture from S3_BUCKET, falling back to the local file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := config.NewLogger(cfg.Logger, os.Stderr)

			store, err := repository.NewStore(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize store: %w", err)
			}
			defer store.Close()

			loader, err := newLoader(ctx, cfg.S3, cmd.Bool("s3"), logger)
			if err != nil {
				return err
			}

			owner := model.CreateUserRequest{
				Email:    cmd.String("email"),
				Password: cmd.String("password"),
				Name:     cmd.String("name"),
			}

			created, err := seed(ctx, store, loader, owner, cmd.String("file"), logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "imported %d recipes for %s\n", created, owner.Email)
			return nil
		},
	}
}

// newLoader picks the fixture source. S3 is used when enabled in the
// environment or requested on the command line.
func newLoader(ctx context.Context, cfg config.S3Config, forceS3 bool, logger zerolog.Logger) (fixture.Loader, error) {
	fileLoader := fixture.NewFileLoader(logger)
	if !cfg.Enabled && !forceS3 {
		return fileLoader, nil
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required to read fixtures from S3")
	}

	s3Loader, err := fixture.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialise S3 loader, using local file system only")
		return fileLoader, nil
	}

	return fixture.NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, logger), nil
}

// seed ensures the owner exists, then imports the fixture at path for them.
func seed(
	ctx context.Context,
	store *repository.Store,
	loader fixture.Loader,
	owner model.CreateUserRequest,
	path string,
	logger zerolog.Logger,
) (int, error) {
	users := service.NewUserService(store.Users, nil, logger)

	user, err := users.Register(ctx, &owner)
	if errors.Is(err, model.ErrEmailTaken) {
		user, err = store.Users.GetByEmail(ctx, service.NormalizeEmail(owner.Email))
		if err == nil && user == nil {
			err = model.ErrUserNotFound
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to prepare owner %s: %w", owner.Email, err)
	}

	records, err := loader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load fixture: %w", err)
	}

	importer := fixture.NewImporter(service.NewRecipeService(store.Recipes, logger), logger)

	created, err := importer.Import(ctx, user.ID, records)
	if err != nil {
		return created, fmt.Errorf("import stopped after %d recipes: %w", created, err)
	}

	return created, nil
}
