// Package jobs provides the scheduled background tasks of the system,
// built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PickupReleaseJob - promotes Draft orders whose pickup-ready time has
// passed to ReadyForPickup.
// 2. AutoAssignJob - retries pickup courier assignment for orders that left
// intake unassigned.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(releaseHandler, autoAssignHandler, systemActorID, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs run once a minute. Each sweep reads persisted state, so a
// missed tick only delays work until the next one.
//
// # Error Handling
//
// Empty sweeps (nothing due, nothing waiting) are expected outcomes and are
// not logged as errors. Any other failure is logged and retried on the next
// tick; a failed job start stops jobs that already started.
package jobs
