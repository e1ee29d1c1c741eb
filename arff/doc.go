// Package arff reads and writes datasets in the Attribute-Relation File Format.
//
// An ARFF file is a header followed by data:
//
//	% comment
//	@relation zoo
//	@attribute hair {false, true}
//	@attribute legs numeric
//	@attribute 'animal name' string
//	@attribute seen date "yyyy-MM-dd"
//	@data
//	true, 4, aardvark, 2001-04-03
//	false, ?, 'sea wasp', ?
//	{1 2, 2 gull}
//
// Supported:
//
//   - Keywords are case-insensitive; names and values may be quoted with ' or ".
//   - Attribute types numeric, real, integer, string, date [format] and nominal
//     {label, ...}. Relational attributes are rejected with ErrUnsupportedType.
//   - Dense rows, sparse rows ({index value, ...}) and an optional trailing
//     instance weight ({w}).
//   - "?" marks a missing value; '%' starts a comment outside quotes.
//
// Every parse error is reported as "arff: line N: ..." and wraps one of the
// sentinel errors below, so callers can branch with errors.Is.
//
// Read and ReadFile return *dataset.Instances; Write emits a dense ARFF file
// that Read accepts (relation, attributes, values, missing and weights
// round-trip).
package arff
