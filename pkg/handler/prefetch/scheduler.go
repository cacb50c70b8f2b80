package prefetch

import (
	"context"

	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/rescue/pkg/task"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/metadata"
)

// Creator is the part of the rescue engine the scheduler needs.
type Creator interface {
	Create(tsk *task.Task) error
}

type SchedulerConfig struct {
	Logger logger.Interface
	Rescue Creator
}

// Scheduler emits the tasks Handler consumes.
type Scheduler struct {
	logger logger.Interface
	rescue Creator
}

func NewScheduler(c SchedulerConfig) (*Scheduler, error) {
	if c.Logger == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Logger must not be empty", c)
	}
	if c.Rescue == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Rescue must not be empty", c)
	}

	s := &Scheduler{
		logger: c.Logger,
		rescue: c.Rescue,
	}

	return s, nil
}

func (s *Scheduler) Schedule(ctx context.Context, slug string) error {
	if slug == "" {
		return tracer.Maskf(invalidTaskError, "%s must not be empty", metadata.PostSlug)
	}

	err := s.rescue.Create(NewTask(slug))
	if err != nil {
		return tracer.Mask(err)
	}

	s.logger.Log(ctx, "level", "debug", "message", "scheduled prefetch", "slug", slug)

	return nil
}

func NewTask(slug string) *task.Task {
	return &task.Task{
		Obj: task.TaskObj{
			Metadata: map[string]string{
				metadata.TaskAction:   "prefetch",
				metadata.TaskResource: "post",
				metadata.PostSlug:     slug,
			},
		},
	}
}
