// planopt is the command-line front end of the production plan optimizer:
// it loads a YAML dataset, runs the feasibility analysis, and optionally
// formulates and solves one of the two optimization models.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bakeops/production-plan-optimizer/internal/config"
	"github.com/bakeops/production-plan-optimizer/internal/dataset"
	"github.com/bakeops/production-plan-optimizer/internal/logging"
	"github.com/bakeops/production-plan-optimizer/internal/metrics"
	"github.com/bakeops/production-plan-optimizer/internal/optimizer"
	"github.com/bakeops/production-plan-optimizer/pkg/formulation"
	"github.com/bakeops/production-plan-optimizer/pkg/solver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var configFile string

	root := &cobra.Command{
		Use:           "planopt",
		Short:         "Plan production against a time-varying, compatibility-restricted resource pool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	root.PersistentFlags().String("dataset", "", "path to the YAML planning dataset")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-development", false, "console log output instead of JSON")
	must(v.BindPFlag("dataset", root.PersistentFlags().Lookup("dataset")))
	must(v.BindPFlag("logLevel", root.PersistentFlags().Lookup("log-level")))
	must(v.BindPFlag("logDevelopment", root.PersistentFlags().Lookup("log-development")))

	root.AddCommand(newCheckCmd(v, &configFile))
	root.AddCommand(newSolveCmd(v, &configFile))
	return root
}

func newCheckCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the feasibility analysis without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, runner, err := setup(v, *configFile)
			if err != nil {
				return err
			}
			data, err := dataset.Load(cfg.Dataset)
			if err != nil {
				return err
			}
			report, err := runner.CheckOnly(data)
			if err != nil {
				return err
			}
			renderReport(cmd, report)
			if !report.Feasible {
				os.Exit(2)
			}
			return nil
		},
	}
}

func newSolveCmd(v *viper.Viper, configFile *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Formulate and solve an optimization model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, runner, err := setup(v, *configFile)
			if err != nil {
				return err
			}
			data, err := dataset.Load(cfg.Dataset)
			if err != nil {
				return err
			}

			mode := formulation.MinimizeCost
			if cfg.Objective == "maximize_output" {
				mode = formulation.MaximizeOutput
			}
			result, err := runner.Run(cmd.Context(), data, optimizer.RunOptions{
				Mode:          mode,
				LimitToDemand: cfg.LimitToDemand,
				SolverName:    cfg.Solver.Name,
				Solver: solver.Config{
					TimeLimitSeconds: cfg.Solver.TimeLimitSeconds,
					OptimalityGap:    cfg.Solver.OptimalityGap,
				},
				Force: force,
			})
			if err != nil {
				return err
			}

			renderReport(cmd, result.Report)
			if result.Raw == nil {
				return fmt.Errorf("dataset is infeasible; rerun with --force to let the solver confirm")
			}
			if result.Solution == nil {
				return fmt.Errorf("solver finished without a solution: %s", result.Raw.Status)
			}
			renderSolution(cmd, result)
			return nil
		},
	}
	cmd.Flags().Bool("limit-to-demand", false, "force exact demand fulfillment under maximize_output")
	cmd.Flags().String("objective", "minimize_cost", "objective mode (minimize_cost, maximize_output)")
	cmd.Flags().String("solver", config.DefaultSolverName, "solver backend (cpsat, glpk)")
	cmd.Flags().Float64("time-limit", config.DefaultTimeLimitSeconds, "solver time limit in seconds")
	cmd.Flags().Float64("gap", config.DefaultOptimalityGap, "relative optimality gap tolerance")
	cmd.Flags().String("metrics-listen", "", "address to serve Prometheus metrics on during the solve")
	cmd.Flags().BoolVar(&force, "force", false, "solve even when the feasibility check fails")
	must(v.BindPFlag("limitToDemand", cmd.Flags().Lookup("limit-to-demand")))
	must(v.BindPFlag("objective", cmd.Flags().Lookup("objective")))
	must(v.BindPFlag("solver.name", cmd.Flags().Lookup("solver")))
	must(v.BindPFlag("solver.timeLimitSeconds", cmd.Flags().Lookup("time-limit")))
	must(v.BindPFlag("solver.optimalityGap", cmd.Flags().Lookup("gap")))
	must(v.BindPFlag("metricsListen", cmd.Flags().Lookup("metrics-listen")))
	return cmd
}

func setup(v *viper.Viper, configFile string) (*config.Config, *optimizer.Runner, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Dataset == "" {
		return nil, nil, fmt.Errorf("no dataset given (use --dataset or the config file)")
	}
	log, err := logging.NewLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, nil, err
	}
	m := metrics.New()
	if cfg.MetricsListen != "" {
		serveMetrics(cfg.MetricsListen, m)
	}
	return cfg, optimizer.New(log, m), nil
}

// serveMetrics exposes the registry for scraping while a long solve runs.
func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
