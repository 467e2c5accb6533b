package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/internal/application"
	"github.com/oksasatya/planify/pkg/jobs"
)

type outcome int

const (
	ack outcome = iota
	requeue
	drop
)

type purger interface {
	PurgeTasks(ctx context.Context, job jobs.TaskCleanup) (int64, error)
}

// handle runs one cleanup job. A failed job is retried once; a redelivered failure, a
// malformed message or a project that still exists is dropped.
func handle(ctx context.Context, p purger, logger *logrus.Logger, body []byte, redelivered bool) outcome {
	var job jobs.TaskCleanup
	if err := json.Unmarshal(body, &job); err != nil {
		logger.WithError(err).Error("bad message")
		return drop
	}
	log := logger.WithFields(logrus.Fields{"project_id": job.ProjectID, "owner_id": job.OwnerID, "redelivered": redelivered})

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	n, err := p.PurgeTasks(c, job)
	switch {
	case err == nil:
		log.WithField("tasks", n).Info("orphaned tasks purged")
		return ack
	case errors.Is(err, application.ErrValidation), errors.Is(err, application.ErrProjectExists):
		log.WithError(err).Error("cleanup job rejected")
		return drop
	case redelivered:
		log.WithError(err).Error("cleanup failed twice, dropping job")
		return drop
	default:
		log.WithError(err).Warn("cleanup failed, requeueing")
		return requeue
	}
}
