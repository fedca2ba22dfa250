package httptransport

import "expvar"

var (
	metricXPWriteTotal       = expvar.NewInt("xp_write_total")
	metricXPWriteErrors      = expvar.NewInt("xp_write_errors_total")
	metricXPWriteRateLimited = expvar.NewInt("xp_write_rate_limited_total")

	metricLeaderboardTotal  = expvar.NewInt("leaderboard_query_total")
	metricLeaderboardErrors = expvar.NewInt("leaderboard_query_errors_total")
)
