package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/entrhq/mymaps/pkg/app"
	"github.com/entrhq/mymaps/pkg/creation"
	"github.com/entrhq/mymaps/pkg/executor/tui"
	"github.com/entrhq/mymaps/pkg/maps"
	"github.com/entrhq/mymaps/pkg/maps/store"
	"github.com/entrhq/mymaps/pkg/presenter"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "mymaps",
		Short: "Keep personal maps of places in your terminal",
		Long: `mymaps keeps named maps, each a list of places, in one local data file.

Run without arguments to open the interactive list. The data file is JSON or
YAML depending on its extension and is rewritten in full after every change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dataFile, "data", "", "maps data file (default ~/.mymaps/UserMaps.json)")
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.mymaps/config.json)")
	flags.StringVar(&opts.onCorrupt, "on-corrupt", "", "what to do with an unreadable data file: fail or quarantine")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newCreateCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return root
}

func runTUI(cmd *cobra.Command, opts *options) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	a := app.New(s.store, nil, s.logger)
	exec := tui.NewExecutor(a, tui.Options{
		ToastDuration: s.ui.GetToastDuration(),
		DetailStyle:   s.ui.GetDetailStyle(),
	}, s.logger)
	return exec.Run(cmd.Context())
}

func newListCmd(opts *options) *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			matcher, err := maps.NewMatcher(pattern)
			if err != nil {
				return err
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			p := presenter.New(presenter.NewTextView(cmd.OutOrStdout(), matcher), nil)
			p.Reloaded(s.store.Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVarP(&pattern, "match", "m", "", "only list maps whose title matches this glob (case-insensitive)")
	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show one map as YAML",
		Long:  "Show one map as YAML. Maps are numbered from 1 as printed by list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("map number %q is not a number", args[0])
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			var shown maps.Map
			p := presenter.New(presenter.NewTextView(io.Discard, nil), func(_ int, m maps.Map) {
				shown = m
			})
			p.Reloaded(s.store.Snapshot())
			if _, err := p.Select(n - 1); err != nil {
				return fmt.Errorf("no map number %d (have %d)", n, p.Len())
			}

			out, err := maps.DetailYAML(shown)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	var rawPlaces []string
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a map",
		Long: `Create a map and save it immediately.

Places are given as --place "title|description|latitude|longitude"; the
description may be left empty or omitted.`,
		Example: `  mymaps create "Lisbon" --place "Belém Tower|16th century|38.6916|-9.2160"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			places := make([]maps.Place, 0, len(rawPlaces))
			for _, raw := range rawPlaces {
				p, err := creation.ParsePlace(raw)
				if err != nil {
					return err
				}
				places = append(places, p)
			}

			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			a := app.New(s.store, creation.Static{Places: places}, s.logger)
			res, err := a.SubmitTitle(cmd.Context(), args[0])
			if errors.Is(err, maps.ErrInvalidTitle) {
				return errors.New(app.InvalidTitleMessage)
			}
			if err != nil {
				return err
			}
			if !res.Created {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled; nothing saved.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created map %d: %s (%s)\n", res.Position+1, res.Map.Title, res.Map.Summary())
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&rawPlaces, "place", "p", nil, `place as "title|description|lat|lon" (repeatable)`)
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		formatName string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every map to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := store.ParseFormat(formatName)
			if err != nil {
				return err
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if output == "" {
				return store.Export(cmd.OutOrStdout(), format, s.store.Snapshot())
			}
			return exportFile(output, format, s.store.Snapshot())
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mymaps v%s\n", version)
		},
	}
}

// exportFile writes c to path and reports a failed close as an error.
func exportFile(path string, format store.Format, c store.Collection) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := store.Export(f, format, c); err != nil {
		f.Close()
		return fmt.Errorf("export to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
