package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hclust/config"
	"github.com/katalvlaran/hclust/hierarchical"
	"github.com/katalvlaran/hclust/internal/logging"
	"github.com/katalvlaran/hclust/pipeline"
)

func (a *app) runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [dataset.arff]",
		Short: "Cluster a dataset and print the result",
		Example: `  hclust run --profile zoo testdata/zoo.arff
  hclust run -k 3 -L WARD --filter replace-missing data.arff
  hclust run --class last -o table data.arff`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.v.Set(config.KeyDataset, args[0])
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}

			log, closer, err := logging.New(cfg.Logging, a.stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			_, err = pipeline.Run(cmd.Context(), cfg, a.stdout, log)
			return err
		},
	}

	f := cmd.Flags()
	f.IntP("clusters", "k", hierarchical.DefaultNumClusters, "number of clusters")
	f.StringP("link", "L", hierarchical.DefaultLink.String(), "link type: "+strings.Join(hierarchical.LinkNames(), ", "))
	f.String("metric", "euclidean", "distance: euclidean, manhattan, chebyshev")
	f.StringSlice("filter", nil, "filters applied in order: replace-missing, nominal-to-binary")
	f.Bool("transform-all", false, "nominal-to-binary also expands two-label attributes")
	f.StringSlice("ignore", nil, "attributes left out of the distance: names, 1-based indices, first or last")
	f.String("class", "", "class attribute: name, 1-based index, first or last")
	f.String("label", "", "attribute used for dendrogram leaf labels")
	f.StringP("format", "o", "plain", "output format: plain, table, json")
	f.Bool("assignments", false, "list the cluster of every instance")
	f.Int("workers", 0, "goroutines for the distance matrix (0 = GOMAXPROCS)")
	f.Bool("branch-length", false, "print branch lengths as merge height differences")
	f.Bool("normalize", true, "scale numeric attributes to [0,1]")

	for flag, key := range map[string]string{
		"clusters":      config.KeyClusters,
		"link":          config.KeyLink,
		"metric":        config.KeyMetric,
		"filter":        config.KeyFilters,
		"transform-all": config.KeyTransformAll,
		"ignore":        config.KeyIgnore,
		"class":         config.KeyClass,
		"label":         config.KeyLabel,
		"format":        config.KeyFormat,
		"assignments":   config.KeyAssignments,
		"workers":       config.KeyWorkers,
		"branch-length": config.KeyBranchLength,
		"normalize":     config.KeyNormalize,
	} {
		a.bind(f.Lookup(flag), key)
	}

	return cmd
}
