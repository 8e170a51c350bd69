package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inventory/internal/loader"
	"inventory/internal/service"
	"inventory/internal/watcher"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		file  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load an inventory file, or the built-in demo inventory",
		Long: `Create every company, office, group and host named in a YAML file.
Entries that already exist are left alone, so seeding twice is harmless.
Without --file the Acme/RabbitWorks demo inventory is loaded.

With --watch the file is applied again each time it changes, until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && file == "" {
				return fmt.Errorf("--watch requires --file")
			}

			m, err := a.manager()
			if err != nil {
				return err
			}

			res, err := seed(cmd.Context(), a.log, m, file)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			w := watcher.New(file, func() {
				// A bad edit is logged and the previous state kept
				_, _ = seed(cmd.Context(), a.log, m, file)
			}).WithLogger(a.log.Named("watcher"))

			if err := w.Watch(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Inventory YAML file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-apply the file whenever it changes")
	return cmd
}

// seed applies file, or the demo inventory when file is empty
func seed(ctx context.Context, log *zap.Logger, m *service.Manager, file string) (*loader.Result, error) {
	var (
		y   *loader.InventoryYAML
		err error
	)
	if file != "" {
		y, err = loader.LoadYAML(file)
	} else {
		y, err = loader.Demo()
	}
	if err != nil {
		log.Error("failed to load inventory file", zap.String("path", file), zap.Error(err))
		return nil, err
	}

	res, err := loader.Apply(ctx, m, y)
	if res != nil {
		log.Info("seeded",
			zap.String("path", file),
			zap.Any("created", res.Created),
			zap.Any("existed", res.Existed),
		)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
