// Package hclust is a small toolkit for agglomerative hierarchical clustering
// of ARFF datasets, from parsing to dendrograms and evaluation.
//
// 🚀 What is hclust?
//
//	A pure-Go pipeline that brings together:
//		• ARFF reading & writing: dense and sparse data, weights, quoting
//		• Filters: ReplaceMissingValues, NominalToBinary
//		• Distances: normalized Euclidean / Manhattan / Chebyshev, parallel pairwise matrix
//		• Linkage: SINGLE (via MST), COMPLETE, AVERAGE, MEAN, CENTROID, WARD, ADJCOMPLETE
//		• Dendrograms: Newick output, optional branch lengths
//		• Evaluation: classes-to-clusters mapping and confusion counts
//
// Under the hood, everything is organized in subpackages:
//
//	arff/          ARFF reader and writer
//	dataset/       Instances, attributes, missing values, weights
//	filter/        dataset → dataset transformations and chains
//	matrix/        dense and condensed matrices, column statistics
//	distance/      fitted metrics and the pairwise distance matrix
//	mst/           Prim and Kruskal over a condensed matrix
//	hierarchical/  the Clusterer, dendrogram nodes, prediction
//	evaluation/    cluster sizes and classes-to-clusters
//	report/        plain, table and JSON rendering
//	config/        viper configuration and built-in profiles
//	pipeline/      one run end to end
//	cmd/hclust     the command line
//
// Quick ASCII example, three points merged with SINGLE link:
//
//	      ┌──┴──┐     height 0.75
//	   ┌──┴──┐  │     height 0.25
//	   a     b  c
//
//	prints as ((a:0.25,b:0.25):0.5,c:0.75).
//
//	go install github.com/katalvlaran/hclust/cmd/hclust@latest
package hclust
