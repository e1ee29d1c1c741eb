package hierarchical_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/hierarchical"
)

// ExampleClusterer clusters three labelled points on a line (0, 1 and 4) into
// two single-link clusters and prints the model.
func ExampleClusterer() {
	name := dataset.NewString("name")
	d := dataset.New("line", name, dataset.NewNumeric("x"))
	for i, x := range []float64{0, 1, 4} {
		label := string(rune('a' + i))
		_ = d.Add([]float64{float64(name.AddString(label)), x})
	}

	c, err := hierarchical.New(hierarchical.WithNumClusters(2), hierarchical.WithLink(hierarchical.Single))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err = c.Build(context.Background(), d); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(c)
	sizes, _ := c.Sizes()
	fmt.Println("sizes:", sizes)
	// Output:
	// Cluster 0
	// (a:0.25,b:0.25)
	//
	// Cluster 1
	// c
	//
	// sizes: [2 1]
}
