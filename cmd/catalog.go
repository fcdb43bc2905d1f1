package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hankinsohl/fgdb/biz/service"
	"github.com/hankinsohl/fgdb/pkg/env"
)

func initCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create directories and tables, and reset test environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.Initializer.Run(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "initialized")
			return err
		},
	}
}

func updateCommand(a *app) *cobra.Command {
	var policy string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh the production catalog from the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := service.ParsePolicy(policy)
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.Updater.Run(cmd.Context(), p)
			if err != nil {
				return err
			}
			if !res.Updated {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "up to date")
				return err
			}
			return printCounts(cmd.OutOrStdout(), res.Rows)
		},
	}
	cmd.Flags().StringVar(&policy, "policy", service.PolicyAuto.String(), "Update policy: skip, auto or force")
	return cmd
}

func countsCommand(a *app) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Print the row count of every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			_, counts, err := svc.Catalog.Counts(cmd.Context(), target)
			if err != nil {
				return err
			}
			return printCounts(cmd.OutOrStdout(), counts)
		},
	}
	envFlag(cmd, &target)
	return cmd
}

func exportCommand(a *app) *cobra.Command {
	var target, table, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one table as catalog JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			w, done, err := output(cmd, out)
			if err != nil {
				return err
			}
			_, err = svc.Catalog.Export(cmd.Context(), target, table, w)
			return done(err)
		},
	}
	envFlag(cmd, &target)
	tableFlag(cmd, &table)
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}

func importCommand(a *app) *cobra.Command {
	var target, table, in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Insert catalog JSON rows whose keys are not yet present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			r, closeIn, err := input(cmd, in)
			if err != nil {
				return err
			}
			defer closeIn()
			e, n, err := svc.Catalog.Import(cmd.Context(), target, table, r)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "inserted %d rows into %s (%s)\n", n, table, e.RelativePath())
			return err
		},
	}
	envFlag(cmd, &target)
	tableFlag(cmd, &table)
	cmd.Flags().StringVarP(&in, "in", "i", "-", "Input file, - for stdin")
	return cmd
}

func partialCommand(a *app) *cobra.Command {
	var table, in, out string
	cmd := &cobra.Command{
		Use:   "partial",
		Short: "Write a random reduced subset of a catalog JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			r, closeIn, err := input(cmd, in)
			if err != nil {
				return err
			}
			defer closeIn()
			w, done, err := output(cmd, out)
			if err != nil {
				return err
			}
			return done(svc.Catalog.Partial(table, r, w))
		},
	}
	tableFlag(cmd, &table)
	cmd.Flags().StringVarP(&in, "in", "i", "-", "Input file, - for stdin")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}

func publishCommand(a *app) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a snapshot of an environment to the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.Publisher.Publish(cmd.Context(), target)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "published %d files at %s\n",
				len(res.Files), service.FormatTimestamp(res.Timestamp))
			return err
		},
	}
	envFlag(cmd, &target)
	return cmd
}

func envFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "env", "e", env.Prod.RelativePath(),
		"Environment: prod, test1..test5, or "+service.AnyTestEnv+" for any free test environment")
}

func tableFlag(cmd *cobra.Command, table *string) {
	cmd.Flags().StringVarP(table, "table", "t", "", "Table name")
	_ = cmd.MarkFlagRequired("table")
}

func printCounts(w io.Writer, counts map[string]int64) error {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\n", name, counts[name])
	}
	return tw.Flush()
}

func input(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "" || name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// output returns the destination and a function that closes it, joining
// the close error with the operation's.
func output(cmd *cobra.Command, name string) (io.Writer, func(error) error, error) {
	if name == "" || name == "-" {
		return cmd.OutOrStdout(), func(err error) error { return err }, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func(err error) error {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}, nil
}
