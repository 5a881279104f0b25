// Package report renders audit results for people and machines.
//
// [WriteText] prints the terminal report: a summary of catalog matches
// followed by one block per non-empty category. [WriteStats] prints a
// per-category table. [WriteJSON] and [ExportJSON] write the export shape
// documented on classify.Result.
//
// Text output is available in English and Spanish; [DetectLang] picks one
// from the usual locale environment variables.
//
// The provenance subpackage draws which parent pulled in each flagged
// package as a Graphviz graph.
package report
