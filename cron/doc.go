// Package cron provides schedule-driven task submission for a conveyor
// queue, built on robfig/cron/v3.
//
// A [Scheduler] holds named entries, each pairing a cron spec with a
// task. When an entry fires, the task is submitted to the queue
// through the scheduler's [EnqueueFunc]; execution, concurrency, and
// observation then follow the queue's normal rules.
//
//	sched := cron.NewScheduler(func(t conveyor.Task) { q.Push(t) }, logger)
//	sched.Add("hourly-report", "0 * * * *", conveyor.Named{Name: "report", Run: buildReport})
//	sched.Start(ctx)
//
// Specs use the standard 5-field cron syntax plus descriptors such as
// "@every 30s" and "@hourly".
package cron
