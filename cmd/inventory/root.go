package main

import (
	"context"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inventory/internal/codec"
	"inventory/internal/config"
	"inventory/internal/logging"
	"inventory/internal/service"
)

// app holds what the commands share for one invocation
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg  *config.Config
	path string
	log  *zap.Logger

	mgr    *service.Manager
	events chan service.Event
	wg     sync.WaitGroup
}

// run executes one command line. The manager, if a command opened one, is
// closed before run returns, whether or not the command failed.
func run(ctx context.Context, args []string) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	var (
		list bool
		host string
	)

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Company, office, group and host inventory",
		Long: `Manage a Company > Office > Group/Host inventory stored in SQLite.

Called with --list or --host the command behaves as an Ansible dynamic
inventory script:

  ansible-playbook -i inventory site.yml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list && host == "" {
				return cmd.Help()
			}

			m, err := a.manager()
			if err != nil {
				return err
			}
			inv, err := m.Inventory(cmd.Context())
			if err != nil {
				return err
			}

			c := codec.NewAnsibleJSONCodec()
			if list {
				return c.Export(inv, cmd.OutOrStdout())
			}
			return c.ExportHost(inv, host, cmd.OutOrStdout())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default: search the standard locations)")
	pf.StringVar(&a.dbPath, "db", "", "SQLite database path (overrides the config file)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the config file)")

	cmd.Flags().BoolVar(&list, "list", false, "Print the whole inventory as Ansible dynamic inventory JSON")
	cmd.Flags().StringVar(&host, "host", "", "Print the Ansible vars of one host")
	cmd.MarkFlagsMutuallyExclusive("list", "host")

	cmd.AddCommand(
		newCompanyCmd(a),
		newOfficeCmd(a),
		newGroupCmd(a),
		newHostCmd(a),
		newDumpCmd(a),
		newSeedCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

// setup loads the config and builds the logger
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, a.path, err = config.LoadFromPath(a.configPath)
	} else {
		a.cfg, a.path, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.dbPath != "" {
		a.cfg.Database.Path = a.dbPath
	}
	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}

	a.log, err = logging.New(a.cfg.Logging)
	if err != nil {
		return err
	}
	a.log.Debug("config loaded", zap.String("path", a.path), zap.String("summary", a.cfg.Summary()))
	return nil
}

// manager opens the inventory on first use
func (a *app) manager() (*service.Manager, error) {
	if a.mgr != nil {
		return a.mgr, nil
	}

	var opts []service.Option
	if a.log.Core().Enabled(zap.DebugLevel) {
		bus := service.NewEventBus()
		a.events = make(chan service.Event, 64)
		bus.Subscribe(a.events)
		opts = append(opts, service.WithEventBus(bus))

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			for ev := range a.events {
				a.log.Debug("event", zap.String("type", string(ev.Type)), zap.String("key", ev.Key))
			}
		}()
	}

	m, err := service.Open(a.cfg, a.log, opts...)
	if err != nil {
		return nil, err
	}
	a.mgr = m
	return m, nil
}

func (a *app) close() {
	if a.mgr != nil {
		if err := a.mgr.Close(); err != nil {
			a.log.Warn("failed to close inventory", zap.Error(err))
		}
		a.mgr = nil
	}
	if a.events != nil {
		close(a.events)
		a.wg.Wait()
		a.events = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
