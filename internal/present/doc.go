// Package present turns calculation records into the views a user reads:
// a terminal table of every result and two PNG charts.
//
// The data half (Rows, BarSeries, ScatterSeries) is pure and has no
// dependency on the rendering libraries. The rendering half uses pterm for
// the table and gonum/plot for the charts.
//
// Charts need at least one record. Requests against an empty store fail
// with *ir.EmptyDataError, which callers show as a warning.
package present
