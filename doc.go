// Package relex extracts binary relations between entity mentions in
// annotated text. Given a document with sentence boundaries and mention spans
// supplied by upstream annotators, the pipeline enumerates candidate argument
// pairs per sentence and either emits labeled training examples (training
// mode) or classifies each pair and materializes directional relation records
// (inference mode).
//
// Direction handling is the heart of the package. A single-direction run sees
// each unordered pair once, in sentence order, and encodes reversed relations
// with an inverted label; a both-directions run sees each pair twice, once per
// order. The two representations are fixed per run and round-trip losslessly
// through the label codec in pkg/types.
package relex
