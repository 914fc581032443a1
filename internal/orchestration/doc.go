// Package orchestration sits between the user-facing surfaces and the
// engine worker. Dispatcher enforces that at most one computation is in
// flight, assigns request ids and hands every result to a ResultSink.
// RunAll and AnalyzeComparisonResults run several algorithms on the same n
// and check that they agree, reporting through ResultPresenter.
package orchestration
