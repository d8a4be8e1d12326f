// Package resample implements multinomial (inverse-CDF) resampling of a
// weighted particle population.
//
// [Indices] turns a weight vector into survivor indices; [Vector] and [Rows]
// materialize the resampled weights and population from those indices.
//
// Weights are taken as given: nothing here normalizes them implicitly. When the
// cumulative sum falls short of 1 because of floating-point accumulation, a
// uniform draw that lands beyond the last cumulative value selects the last
// index. Callers that prefer renormalizing can pass the weights through
// [Normalize] first.
package resample
