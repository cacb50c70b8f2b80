package handler

import "github.com/xh3b4sd/rescue/pkg/task"

// Interface is implemented by every task handler the queue controller
// dispatches to. Filter decides whether a task belongs to the handler and
// Ensure executes it.
type Interface interface {
	Ensure(tsk *task.Task) error
	Filter(tsk *task.Task) bool
}
