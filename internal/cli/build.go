package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skein-dev/skein/internal/dataset"
	"github.com/skein-dev/skein/pkg/cache"
	"github.com/skein-dev/skein/pkg/forcegraph"
)

// cacheTTL is how long a built graph stays valid in the local cache.
// Keys are content hashes of the dataset, so a long TTL is safe: an
// edited dataset always produces a new key.
const cacheTTL = 30 * 24 * time.Hour

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output  string // output file path (stdout if empty)
	flat    bool   // emit flattened nodes/links lists instead of the two-level shape
	noCache bool   // bypass the local graph cache
}

// buildCommand creates the build command for converting datasets to graph JSON.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <dataset.toml>",
		Short: "Build force-directed graph JSON from a dataset",
		Long: `Build reads a TOML dataset, converts every entity and relation into
uniform node and edge records, and writes the resulting graph as JSON.

Examples:
  skein build research.toml                 # Print the graph to stdout
  skein build research.toml -o graph.json   # Write to a file
  skein build research.toml --flat          # Emit flat nodes/links lists`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.flat, "flat", false, "emit flat nodes/links lists instead of variant-keyed maps")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the local graph cache")

	return cmd
}

// runBuild loads the dataset, builds its graph (consulting the content-hash
// cache unless disabled), and writes the JSON to the output target.
func (c *CLI) runBuild(ctx context.Context, path string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	raw, err := os.ReadFile(path)
	if err != nil {
		printError("Cannot read dataset: %v", err)
		return err
	}

	ds, err := dataset.Parse(raw)
	if err != nil {
		printError("Invalid dataset: %v", err)
		return err
	}
	logger.Debugf("Parsed dataset %q: %d people, %d documents", ds.Title, len(ds.People), len(ds.Documents))

	data, cached, err := c.buildJSON(ctx, ds, raw, opts)
	if err != nil {
		printError("Build failed: %v", err)
		return err
	}

	if opts.output == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
		return nil
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		printError("Cannot write output: %v", err)
		return err
	}

	nodes := len(ds.People) + len(ds.Documents)
	edges := len(ds.Knows) + len(ds.Authored) + len(ds.Cites)

	prog.done("Built graph")
	printSuccess("Built %s", StyleHighlight.Render(ds.Title))
	printStats(nodes, edges, cached)
	printFile(opts.output)
	return nil
}

// buildJSON produces the serialized graph for ds, using the local cache
// keyed by the dataset's content hash. The flat shape is never cached:
// it is derived from the canonical two-level shape on the fly.
func (c *CLI) buildJSON(ctx context.Context, ds *dataset.Dataset, raw []byte, opts *buildOpts) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	store := newCache(opts.noCache)
	defer store.Close()

	key := cache.GraphKey(raw)
	if data, ok, err := store.Get(ctx, key); err == nil && ok && !opts.flat {
		logger.Debugf("Cache hit for %s", key)
		return data, true, nil
	}

	g, err := ds.BuildGraph()
	if err != nil {
		return nil, false, err
	}

	if opts.flat {
		data, err := forcegraph.MarshalFlat(forcegraph.Flatten(g))
		return data, false, err
	}

	data, err := forcegraph.MarshalGraph(g)
	if err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, data, cacheTTL); err != nil {
		logger.Debugf("Cache write failed: %v", err)
	}
	return data, false, nil
}
