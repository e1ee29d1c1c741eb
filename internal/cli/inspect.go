package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hclust/arff"
	"github.com/katalvlaran/hclust/filter"
	"github.com/katalvlaran/hclust/pipeline"
	"github.com/katalvlaran/hclust/report"
)

func (a *app) inspectCommand() *cobra.Command {
	var (
		class, format, write string
		filters              []string
	)

	cmd := &cobra.Command{
		Use:   "inspect <dataset.arff>",
		Short: "Describe the attributes of a dataset",
		Long: `inspect prints the relation, instance count and per-attribute type,
label count and missing count. With --filter the summary describes the
filtered data, and --write saves that data as a new ARFF file.`,
		Example: `  hclust inspect --class last testdata/zoo.arff
  hclust inspect --filter replace-missing,nominal-to-binary --write adult-bin.arff adult.arff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			chain, err := filter.ParseFilters(filters)
			if err != nil {
				return err
			}
			d, err := arff.ReadFile(args[0])
			if err != nil {
				return err
			}
			idx, err := pipeline.ResolveAttribute(d, class)
			if err != nil {
				return err
			}
			if err = d.SetClassIndex(idx); err != nil {
				return err
			}
			if d, err = chain.Apply(d); err != nil {
				return err
			}
			if write != "" {
				if err = arff.WriteFile(write, d); err != nil {
					return err
				}
			}

			return report.WriteDataset(a.stdout, report.Summarize(args[0], d), f)
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "class attribute: name, 1-based index, first or last")
	cmd.Flags().StringVarP(&format, "format", "o", "plain", "output format: plain, table, json")
	cmd.Flags().StringSliceVar(&filters, "filter", nil, "filters applied before summarizing")
	cmd.Flags().StringVarP(&write, "write", "w", "", "save the (filtered) dataset as ARFF")

	return cmd
}
