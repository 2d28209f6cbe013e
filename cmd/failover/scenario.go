package main

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
	"github.com/KilimcininKorOglu/failover/internal/logging"
	"github.com/KilimcininKorOglu/failover/internal/simulation"
)

func scenarioCmd() *cobra.Command {
	var instant, verbose bool

	cmd := &cobra.Command{
		Use:   "run <pd|storage>...",
		Short: "Play failover scenarios back to back in the terminal",
		Long: `Play one leader failure per argument, in order, on a fresh pair of
clusters. Every new log line is printed as it happens and the node table is
printed after each scenario. Running the same cluster twice shows the
majority failure.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one scenario (pd or storage) is required")
			}
			for _, arg := range args {
				if _, err := cluster.ParseKind(arg); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := simulation.Options{}
			if instant {
				opts.Sleeper = simulation.Instant
			}
			if verbose {
				opts.Logger = logging.New(logging.Config{Level: "debug", Format: "text", Output: "stderr"})
			}

			kinds := make([]cluster.Kind, len(args))
			for i, arg := range args {
				kinds[i], _ = cluster.ParseKind(arg)
			}

			return playScenarios(cmd.OutOrStdout(), simulation.New(opts), kinds)
		},
	}

	cmd.Flags().BoolVar(&instant, "instant", false, "Skip the delays between steps")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")

	return cmd
}

// logPrinter writes log lines it has not printed yet.
type logPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	printed int
}

func (p *logPrinter) Observe(v simulation.View) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for ; p.printed < len(v.Logs); p.printed++ {
		fmt.Fprintf(p.out, "  %s\n", v.Logs[p.printed])
	}
}

func playScenarios(out io.Writer, sim *simulation.Simulator, kinds []cluster.Kind) error {
	printer := &logPrinter{out: out}
	printer.Observe(sim.View())
	unsubscribe := sim.Subscribe(printer)
	defer unsubscribe()

	for i, kind := range kinds {
		fmt.Fprintf(out, "\n== Scenario %d: %s leader failure ==\n", i+1, kind)

		err := sim.Trigger(kind)
		switch {
		case err == nil:
			sim.Wait()
		case errors.Is(err, simulation.ErrClusterAlreadyUnavailable), errors.Is(err, simulation.ErrNoActiveLeader):
			// The reason is already in the log.
		default:
			return err
		}

		printNodes(out, sim.View())
	}

	return nil
}

func printNodes(out io.Writer, v simulation.View) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "NODE\tCLUSTER\tROLE\tSTATUS")
	for _, kind := range cluster.Kinds {
		for _, n := range v.Nodes(kind) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.Label, n.Kind, n.Role(), n.Status)
		}
	}
	tw.Flush()
}
