package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	zerolog "github.com/rs/zerolog/log"
	cli "github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"

	"github.com/projecteru2/tetris/log"
	"github.com/projecteru2/tetris/metrics"
	"github.com/projecteru2/tetris/optimizer"
	"github.com/projecteru2/tetris/report"
	"github.com/projecteru2/tetris/source"
	"github.com/projecteru2/tetris/store"
	"github.com/projecteru2/tetris/types"
	"github.com/projecteru2/tetris/utils"
	"github.com/projecteru2/tetris/version"
)

var (
	configPath string
	logLevel   string

	capacityFlags [types.NumDimensions]float64
	seed          int64
	sampleBudget  int
	samplerName   string
	outputPath    string
	saveName      string
)

func pack(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: tetris pack <inventory.csv>", 1)
	}

	config, err := utils.LoadConfig(configPath)
	if err != nil {
		zerolog.Fatal().Err(err).Send()
	}
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if c.IsSet("seed") {
		config.Optimizer.Seed = seed
	}
	if c.IsSet("sample-budget") {
		config.Optimizer.SampleBudget = sampleBudget
	}
	if samplerName != "" {
		config.Optimizer.Strategy = samplerName
	}

	if err := log.SetupLog(c.Context, config.LogLevel, config.SentryDSN); err != nil {
		zerolog.Fatal().Err(err).Send()
	}
	defer log.SentryDefer()
	logger := log.WithFunc("main")

	if err := metrics.InitMetrics(config); err != nil {
		logger.Error(c.Context, err)
		return err
	}
	if config.Profile != "" {
		utils.SentryGo(func() {
			server := &http.Server{
				Addr:              config.Profile,
				Handler:           promhttp.Handler(),
				ReadHeaderTimeout: 3 * time.Second,
			}
			if err := server.ListenAndServe(); err != nil {
				logger.Error(c.Context, err, "start metrics http failed")
			}
		})
	}

	replicas, err := source.LoadReplicas(c.Args().First())
	if err != nil {
		logger.Error(c.Context, err, "load inventory failed")
		return err
	}
	capacity := types.ResourceVector(capacityFlags)
	if utils.Any(capacity[:], func(c float64) bool { return c <= 0 }) {
		err := errors.Wrapf(types.ErrInvalidCapacity, "%v", capacity)
		logger.Error(c.Context, err, "server capacity must be positive on every dimension")
		return err
	}

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	opt, err := optimizer.New(config)
	if err != nil {
		logger.Error(ctx, err)
		return err
	}
	plan, err := opt.Optimize(ctx, replicas, capacity)
	if err != nil {
		logger.Error(ctx, err, "optimize failed")
		return err
	}
	plan.ID = uuid.NewString()

	report.Render(os.Stdout, plan)

	if outputPath != "" {
		doc, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			logger.Error(ctx, err)
			return err
		}
		if err := os.WriteFile(outputPath, doc, 0644); err != nil { //nolint:gosec // report file
			logger.Error(ctx, err, "write plan file failed")
			return err
		}
		logger.Infof(ctx, "plan written to %s", outputPath)
	}

	if saveName != "" {
		s, err := store.NewStore(ctx, config)
		if err != nil {
			logger.Error(ctx, err, "open store failed")
			return err
		}
		defer s.Close(ctx)
		if err := s.SavePlan(ctx, saveName, plan); err != nil {
			logger.Error(ctx, err, "save plan failed")
			return err
		}
		logger.Infof(ctx, "plan saved as %s", saveName)
	}
	return nil
}

func plans(c *cli.Context) error {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		zerolog.Fatal().Err(err).Send()
	}
	if err := log.SetupLog(c.Context, config.LogLevel, config.SentryDSN); err != nil {
		zerolog.Fatal().Err(err).Send()
	}

	ctx := context.Background()
	s, err := store.NewStore(ctx, config)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	if name := c.Args().First(); name != "" {
		plan, err := s.GetPlan(ctx, name)
		if err != nil {
			return err
		}
		report.Render(os.Stdout, plan)
		return nil
	}

	names, err := s.ListPlans(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func capacityFlag(d types.Dimension, usage string) *cli.Float64Flag {
	return &cli.Float64Flag{
		Name:        d.String(),
		Usage:       usage,
		Required:    true,
		Destination: &capacityFlags[d],
	}
}

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Print(version.String())
	}

	app := cli.NewApp()
	app.Name = version.NAME
	app.Usage = "pack service replicas onto the fewest physical servers"
	app.Version = version.VERSION
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Value:       "/etc/eru/tetris.yaml",
			Usage:       "config file path for tetris, in yaml",
			Destination: &configPath,
			EnvVars:     []string{"TETRIS_CONFIG_PATH"},
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "set log level",
			Destination: &logLevel,
			EnvVars:     []string{"TETRIS_LOG_LEVEL"},
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:      "pack",
			Usage:     "compute an assignment plan from an inventory csv",
			ArgsUsage: "inventory.csv",
			Action:    pack,
			Flags: []cli.Flag{
				capacityFlag(types.CPU, "effective cores per server"),
				capacityFlag(types.Memory, "effective memory per server (GiB)"),
				capacityFlag(types.Network, "effective bandwidth per server (Mbps)"),
				capacityFlag(types.DiskIO, "effective disk io per server (MB/s)"),
				capacityFlag(types.Storage, "effective storage per server (GiB)"),
				&cli.Int64Flag{
					Name:        "seed",
					Usage:       "random seed for ordering sampling",
					Destination: &seed,
				},
				&cli.IntFlag{
					Name:        "sample-budget",
					Usage:       "random orderings to trial besides the canonical one",
					Destination: &sampleBudget,
				},
				&cli.StringFlag{
					Name:        "strategy",
					Usage:       "ordering sampler: CANONICAL, RANDOM or EXHAUSTIVE",
					Destination: &samplerName,
				},
				&cli.StringFlag{
					Name:        "output",
					Value:       "plan.json",
					Usage:       "plan json file path, empty disables",
					Destination: &outputPath,
				},
				&cli.StringFlag{
					Name:        "save",
					Usage:       "persist the plan in the store under this name",
					Destination: &saveName,
				},
			},
		},
		{
			Name:      "plans",
			Usage:     "list stored plans, or show one by name",
			ArgsUsage: "[name]",
			Action:    plans,
		},
	}
	_ = app.Run(os.Args)
}
