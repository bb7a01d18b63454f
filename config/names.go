// SPDX-License-Identifier: MIT
package config

// Option name vocabulary. Kept as exported constants so callers never
// retype the strings.
const (
	NameData                   = "data"
	NameSeparator              = "separator"
	NameHasHeader              = "has_header"
	NameEqualNulls             = "equal_nulls"
	NameThreads                = "threads"
	NameError                  = "error"
	NameMaxLhs                 = "max_lhs"
	NameSeed                   = "seed"
	NameMetric                 = "metric"
	NameMetricAlgorithm        = "metric_algorithm"
	NameLhsIndices             = "lhs_indices"
	NameRhsIndices             = "rhs_indices"
	NameParameter              = "parameter"
	NameDistFromNullIsInfinity = "dist_from_null_is_infinity"
	NameQ                      = "q"
)
