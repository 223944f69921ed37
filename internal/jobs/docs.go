// Package jobs provides scheduled background tasks for the shipping system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the scheduling service.
//
// # Available Jobs
//
// 1. DepartureDeactivationJob - Runs hourly to deactivate departures whose date has passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(deactivatePastHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The deactivation job uses the cron expression "0 * * * *" and runs at the
// top of every hour. Departures are retired with an hour's granularity; the
// availability listing additionally filters by date, so a stale active flag
// never surfaces an expired slot.
//
// # Error Handling
//
// - The deactivation job logs failures and retries on the next tick
// - Failed job starts will stop any already running jobs
package jobs
