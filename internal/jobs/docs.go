// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order and delivery flow.
//
// # Available Jobs
//
// 1. StaleClaimReleaseJob - Runs every minute to reopen deliveries whose
// claim went stale: the agency accepted but never moved the delivery forward.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(releaseStaleClaimsHandler, maxClaimAge, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The release job logs every failure; a failed sweep leaves all claims as
// they were and the next run retries.
package jobs
