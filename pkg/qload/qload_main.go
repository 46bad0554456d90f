package qload

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tangosearch/qload/pkg/util/log"
)

func printUsage() {
	fmt.Print(`
Query workload generator for Tango Tree search.

Usage:
  qload [flags] command

Available Commands:
  gen        Generate a workload from positional args: n q [u|g]
  stdin      Generate a uniform workload; reads n and q from standard input
  run        Generate workloads defined in a JSON workload file

Flags:
`)
	flag.PrintDefaults()
}

type emitOptions struct {
	seed           int64
	cycle          uint64
	repeat         bool
	collectStats   bool
	graphiteAddr   string
	statsFlushItvl time.Duration
}

func parseEmitOptions(f *flag.FlagSet) *emitOptions {
	o := new(emitOptions)
	f.Int64Var(
		&o.seed,
		"seed",
		0,
		"Seed for the draw-seed stream; 0 derives one from the current time",
	)

	f.Uint64Var(
		&o.cycle,
		"cycle",
		0,
		"Replay cycle length for the draw-seed stream; 0 disables cycling",
	)

	f.BoolVar(
		&o.repeat,
		"repeat",
		false,
		"Whether the seed stream replays after a full cycle instead of stopping",
	)

	f.BoolVar(
		&o.collectStats,
		"collect_stats",
		true,
		"Whether to record key-distribution stats",
	)

	f.StringVar(
		&o.graphiteAddr,
		"graphite_addr",
		"",
		"Graphite endpoint (in host:port format); empty keeps stats local",
	)

	f.DurationVar(
		&o.statsFlushItvl,
		"stats_flush_interval",
		10*time.Second,
		"Stats publishing interval",
	)

	return o
}

// resolveSeed pins down the run seed so a logged value can reproduce
// the exact output later.
func resolveSeed(ctx context.Context, o *emitOptions) {
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}
	log.Infof(ctx, "Using seed %d", o.seed)
}

func maxTreeSize(works []*WorkLoad) int64 {
	max := int64(1)
	for _, w := range works {
		if w.TreeSize > max {
			max = w.TreeSize
		}
	}
	return max
}

func statsRec(o *emitOptions, works []*WorkLoad) (StatsRecorder, error) {
	if !o.collectStats {
		return NewNoOpStatsRecorder(), nil
	}
	if o.graphiteAddr == "" {
		return NewHistoStatsRecorder(maxTreeSize(works)), nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}
	runID := strings.Split(uuid.New().String(), "-")[0]
	return NewGraphiteStatsRecorder(
		o.graphiteAddr,
		o.statsFlushItvl,
		fmt.Sprintf(
			"%s.%s",
			strings.Replace(hostname, ".", "_", -1),
			runID,
		),
	)
}

func emitAll(ctx context.Context, works []*WorkLoad, o *emitOptions) {
	rec, err := statsRec(o, works)
	Check(err)
	defer rec.Flush()

	for _, w := range works {
		Check(Emit(ctx, w, os.Stdout, rec))
	}

	if s := rec.Summary(); s != "" {
		log.Info(ctx, s)
	}
}

// Main is the qload entry point.
func Main() {
	defer log.Flush()
	ctx := log.WithLogTag(context.Background(), "main", nil)

	genCommand := flag.NewFlagSet("gen", flag.ExitOnError)
	stdinCommand := flag.NewFlagSet("stdin", flag.ExitOnError)
	runCommand := flag.NewFlagSet("run", flag.ExitOnError)

	flag.Usage = printUsage
	flag.Parse()
	if len(flag.Args()) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch cmdName := flag.Arg(0); cmdName {
	case "gen":
		o := parseEmitOptions(genCommand)
		genCommand.Parse(flag.Args()[1:])
		resolveSeed(ctx, o)
		cfg, err := ParseArgs(genCommand.Args())
		if err != nil {
			if IsConfigError(err) {
				fmt.Printf("Use: %s gen n q <u|g>\n", os.Args[0])
				log.Errorf(ctx, "%v", err)
				os.Exit(1)
			}
			log.Fatal(ctx, err)
		}
		emitAll(ctx, []*WorkLoad{newAdHocWorkLoad(cfg, o)}, o)
	case "stdin":
		o := parseEmitOptions(stdinCommand)
		stdinCommand.Parse(flag.Args()[1:])
		resolveSeed(ctx, o)
		cfg, err := ParseInput(os.Stdin)
		if err != nil {
			log.Fatal(ctx, err)
		}
		emitAll(ctx, []*WorkLoad{newAdHocWorkLoad(cfg, o)}, o)
	case "run":
		o := parseEmitOptions(runCommand)
		workFile := runCommand.String(
			"work",
			"./workload.json",
			"Workload definitions (in json format)",
		)
		runCommand.Parse(flag.Args()[1:])
		resolveSeed(ctx, o)

		if _, err := os.Stat(*workFile); os.IsNotExist(err) {
			log.Fatalf(ctx, "workload file '%s' doesn't exist", *workFile)
		}
		data, err := ioutil.ReadFile(*workFile)
		Check(err)
		works, err := ParseWorkLoads(ctx, data, o)
		Check(err)
		emitAll(ctx, works, o)
	default:
		log.Fatalf(ctx, "unknown command %s", cmdName)
	}
}
