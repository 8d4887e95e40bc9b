package main

import (
	"bufio"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-multinet/pkg/community"
	"github.com/dd0wney/cluso-multinet/pkg/generate"
	"github.com/dd0wney/cluso-multinet/pkg/layercmp"
	"github.com/dd0wney/cluso-multinet/pkg/logging"
	"github.com/dd0wney/cluso-multinet/pkg/measures"
	"github.com/dd0wney/cluso-multinet/pkg/metrics"
	"github.com/dd0wney/cluso-multinet/pkg/mlnio"
	"github.com/dd0wney/cluso-multinet/pkg/paths"
	"github.com/dd0wney/cluso-multinet/pkg/store"
	"github.com/dd0wney/cluso-multinet/pkg/summary"
)

type CLI struct {
	network *store.Network
	logger  logging.Logger
	metrics *metrics.Registry
	scanner *bufio.Scanner
}

func main() {
	networkFile := flag.String("network", "", "Network description file to load at startup")
	align := flag.Bool("align", false, "Align the loaded network (every actor on every layer)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	metricsListen := flag.String("metrics-listen", "", "Address to expose Prometheus metrics on (e.g. :9090)")
	flag.Parse()

	printBanner()

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))
	reg := metrics.NewRegistry()

	if *metricsListen != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg.PrometheusRegistry(), promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(*metricsListen, mux); err != nil {
				logger.Error("metrics listener failed", logging.Error(err))
			}
		}()
		fmt.Printf("📈 Metrics exposed on %s/metrics\n", *metricsListen)
	}

	cli := &CLI{
		network: store.NewNetwork(store.WithLogger(logger), store.WithMetrics(reg)),
		logger:  logger,
		metrics: reg,
		scanner: bufio.NewScanner(os.Stdin),
	}

	if *networkFile != "" {
		fmt.Printf("📂 Loading %s...\n", *networkFile)
		n, err := mlnio.ReadFile(*networkFile, mlnio.Options{Align: *align, Logger: logger, Metrics: reg})
		if err != nil {
			fmt.Printf("❌ Failed to load network: %v\n", err)
			os.Exit(1)
		}
		cli.network = n
		cli.showStats()
	}

	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()
	cli.run()
}

func printBanner() {
	fmt.Println(`
╔══════════════════════════════════════════╗
║   Cluso MultiNet - Multilayer Networks   ║
╚══════════════════════════════════════════╝`)
}

func (cli *CLI) run() {
	for {
		fmt.Print("multinet> ")
		if !cli.scanner.Scan() {
			break
		}
		input := strings.TrimSpace(cli.scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("👋 Goodbye!")
			break
		}
		cli.executeCommand(input)
		fmt.Println()
	}
}

func (cli *CLI) executeCommand(input string) {
	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "help":
		cli.showHelp()
	case "stats", "status":
		cli.showStats()
	case "load":
		cli.load(args)
	case "save":
		cli.save(args)
	case "layers":
		cli.showLayers()
	case "align":
		cli.alignNetwork()
	case "measures", "m":
		cli.showMeasures(args)
	case "compare", "c":
		cli.compareLayers(args)
	case "distances", "d":
		cli.showDistances(args)
	case "communities":
		cli.detectCommunities(args)
	case "cliques":
		cli.findCliques(args)
	case "summary", "s":
		cli.showSummary()
	case "grow", "g":
		cli.growNetwork(args)
	default:
		fmt.Printf("Unknown command: %s (try 'help')\n", command)
	}
}

func (cli *CLI) showHelp() {
	fmt.Println(`Available commands:
  stats                      Network size counters
  load <file> [align]        Load a network description file
  save <file>                Write the network description
  layers                     List layers with their summary row
  align                      Insert every actor into every layer
  measures [layer ...]       Per-actor degree and neighborhood table
  compare <method> [target]  Layer comparison matrix
                             methods: jaccard coverage smc rr kulczynski2
                             hamann kl jeffrey js pearson spearman
                             targets: actors edges triangles
  distances <from> <to>      Pareto front of multilayer distances
  communities [omega]        Modularity communities over the coupled graph
  cliques <k> <m>            Clique percolation communities
  summary                    Per-layer descriptive statistics
  grow <config.yaml>         Run a growth simulation onto this network
  exit                       Quit`)
}

func (cli *CLI) showStats() {
	stats := cli.network.GetStatistics()
	fmt.Printf("   Actors:   %d\n", stats.ActorCount)
	fmt.Printf("   Layers:   %d\n", stats.LayerCount)
	fmt.Printf("   Vertices: %d\n", stats.VertexCount)
	fmt.Printf("   Edges:    %d\n", stats.EdgeCount)
}

func (cli *CLI) load(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: load <file> [align]")
		return
	}
	align := len(args) > 1 && args[1] == "align"
	n, err := mlnio.ReadFile(args[0], mlnio.Options{Align: align, Logger: cli.logger, Metrics: cli.metrics})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	cli.network = n
	fmt.Println("✅ Network loaded")
	cli.showStats()
}

func (cli *CLI) save(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: save <file>")
		return
	}
	if err := mlnio.WriteFile(args[0], cli.network); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Printf("✅ Written to %s\n", args[0])
}

func (cli *CLI) showLayers() {
	table := summary.Summarize(cli.network, summary.Options{Metrics: cli.metrics})
	for _, row := range table.Rows {
		dir := "undirected"
		if row.Directed {
			dir = "directed"
		}
		fmt.Printf("   %-15s %-10s order=%-4d size=%d\n", row.Layer, dir, row.Order, row.Size)
	}
}

func (cli *CLI) alignNetwork() {
	if err := cli.network.Align(nil, nil); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Println("✅ Network aligned")
	cli.showStats()
}

func (cli *CLI) showMeasures(layers []string) {
	if len(layers) == 0 {
		layers = nil
	}
	rows := measures.Table(cli.network, nil, layers, store.ModeAll)
	fmt.Printf("   %-15s %6s %6s %6s %10s %10s %10s\n",
		"actor", "deg", "neigh", "xneigh", "rel", "xrel", "dev")
	for _, r := range rows {
		fmt.Printf("   %-15s %6d %6d %6d %10.4f %10.4f %10.4f\n",
			r.Actor, r.Degree, r.Neighborhood, r.ExclusiveNeighbors,
			r.Relevance, r.ExclusiveRelevance, r.DegreeDeviation)
	}
}

var methodNames = map[string]layercmp.Method{
	"jaccard":     layercmp.Jaccard,
	"coverage":    layercmp.Coverage,
	"smc":         layercmp.SimpleMatching,
	"rr":          layercmp.RussellRao,
	"kulczynski2": layercmp.Kulczynski2,
	"hamann":      layercmp.Hamann,
	"kl":          layercmp.KLDivergence,
	"jeffrey":     layercmp.JeffreyDivergence,
	"js":          layercmp.JensenShannon,
	"pearson":     layercmp.Pearson,
	"spearman":    layercmp.Spearman,
}

var targetNames = map[string]layercmp.Target{
	"actors":    layercmp.TargetActors,
	"edges":     layercmp.TargetEdges,
	"triangles": layercmp.TargetTriangles,
}

func (cli *CLI) compareLayers(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: compare <method> [target]")
		return
	}
	method, ok := methodNames[strings.ToLower(args[0])]
	if !ok {
		fmt.Printf("Unknown method %q\n", args[0])
		return
	}
	opts := layercmp.DefaultOptions()
	opts.Metrics = cli.metrics
	if len(args) > 1 {
		target, ok := targetNames[strings.ToLower(args[1])]
		if !ok {
			fmt.Printf("Unknown target %q\n", args[1])
			return
		}
		opts.Target = target
	}
	m, err := layercmp.Matrix(cli.network, method, opts)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Printf("   %-15s", "")
	for _, l := range m.Layers {
		fmt.Printf(" %10s", l)
	}
	fmt.Println()
	for i, l := range m.Layers {
		fmt.Printf("   %-15s", l)
		for j := range m.Layers {
			fmt.Printf(" %10.4f", m.Values[i][j])
		}
		fmt.Println()
	}
}

func (cli *CLI) showDistances(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: distances <from> <to>")
		return
	}
	res, err := paths.ParetoDistances(cli.network, args[0], args[1], paths.Options{Metrics: cli.metrics})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	if len(res.Front) == 0 {
		fmt.Printf("   No path from %s to %s\n", res.From, res.To)
		return
	}
	fmt.Printf("   Layers: %s\n", strings.Join(res.Layers, ", "))
	for _, vec := range res.Front {
		fmt.Printf("   %v\n", vec)
	}
}

func (cli *CLI) detectCommunities(args []string) {
	opts := community.DefaultLouvainOptions()
	opts.Metrics = cli.metrics
	if len(args) > 0 {
		omega, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Printf("Invalid omega %q\n", args[0])
			return
		}
		opts.Omega = omega
	}
	p, err := community.Louvain(cli.network, opts)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Printf("   %d communities, modularity %.4f\n", len(p.Communities), p.Modularity)
	for id, members := range p.Communities {
		fmt.Printf("   [%d]", id)
		for _, v := range members {
			fmt.Printf(" %s@%s", v.Actor, v.Layer)
		}
		fmt.Println()
	}
}

func (cli *CLI) findCliques(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: cliques <k> <m>")
		return
	}
	k, err1 := strconv.Atoi(args[0])
	m, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("k and m must be integers")
		return
	}
	res, err := community.CliquePercolation(cli.network, community.PercolationOptions{K: k, M: m, Metrics: cli.metrics})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Printf("   %d cliques, %d communities\n", len(res.Cliques), len(res.Communities))
	for _, c := range res.Communities {
		fmt.Printf("   [%d]", c.ID)
		for _, v := range c.Members {
			fmt.Printf(" %s@%s", v.Actor, v.Layer)
		}
		fmt.Println()
	}
}

func (cli *CLI) showSummary() {
	table := summary.Summarize(cli.network, summary.Options{Metrics: cli.metrics})
	fmt.Printf("   %-15s %5s %5s %5s %8s %8s %8s %5s\n",
		"layer", "n", "m", "comp", "dens", "cc", "apl", "diam")
	rows := append(append([]summary.LayerRow{}, table.Rows...), table.Flattened)
	for _, r := range rows {
		fmt.Printf("   %-15s %5d %5d %5d %8.4f %8.4f %8.4f %5d\n",
			r.Layer, r.Order, r.Size, r.Components, r.Density, r.Clustering, r.AvgPathLength, r.Diameter)
	}
}

func (cli *CLI) growNetwork(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: grow <config.yaml>")
		return
	}
	cfg, err := generate.LoadConfigFile(args[0])
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	res, err := generate.Grow(cli.network, *cfg, generate.Options{Logger: cli.logger, Metrics: cli.metrics})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Printf("✅ Run %s: %d steps, %d actions\n", res.RunID, res.Steps, len(res.Actions))
	cli.showStats()
}
