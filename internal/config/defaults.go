package config

// defaultTree is the compiled-in lowest-precedence source. Every key here can
// be overridden by files, the settings database, or the environment.
func defaultTree() Tree {
	t := Tree{}

	t.set("paths.base", ".")
	t.set("paths.data_raw", "data/raw")
	t.set("paths.data_processed", "data/processed")
	t.set("paths.logs", "logs")
	t.set("paths.agent_log", "logs/agent.log")
	t.set("paths.config", "configs")

	t.set("processing.parallel.max_collector_workers", 4)
	t.set("processing.parallel.batch_size", 50)
	t.set("processing.timeout_seconds", 300)

	t.set("collectors.request_timeout_seconds", 30)
	t.set("collectors.max_results_per_query", 100)

	t.set("database.pool_size", 5)

	t.set("server.mode", "dev")
	t.set("server.port", 8000)

	return t
}
