package project

import (
	"context"
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned when running a task that was never registered.
var ErrTaskNotFound = errors.New("task not found")

// TaskNotFoundError names the missing task and matches ErrTaskNotFound.
type TaskNotFoundError struct {
	Name string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task '%s' not found", e.Name)
}

// Is lets errors.Is match ErrTaskNotFound.
func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// Action is the body of a task.
type Action func(ctx context.Context) error

// Task is a named unit of work exposed by a plugin.
type Task struct {
	Name        string
	Group       string
	Description string
	Action      Action
}

// TaskContainer holds the tasks registered on a project.
type TaskContainer struct {
	tasks []Task
}

// NewTaskContainer returns an empty container.
func NewTaskContainer() *TaskContainer {
	return &TaskContainer{}
}

// Register adds a task. Registering the same name twice is an error.
func (c *TaskContainer) Register(task Task) error {
	if task.Name == "" {
		return errors.New("task name is empty")
	}

	if task.Action == nil {
		return fmt.Errorf("task '%s' has no action", task.Name)
	}

	if _, ok := c.find(task.Name); ok {
		return fmt.Errorf("task '%s' already registered", task.Name)
	}

	c.tasks = append(c.tasks, task)

	return nil
}

// Names lists registered task names in registration order.
func (c *TaskContainer) Names() []string {
	names := make([]string, 0, len(c.tasks))
	for _, task := range c.tasks {
		names = append(names, task.Name)
	}

	return names
}

// All returns a copy of the registered tasks.
func (c *TaskContainer) All() []Task {
	return append([]Task(nil), c.tasks...)
}

// Run executes the named task.
func (c *TaskContainer) Run(ctx context.Context, name string) error {
	task, ok := c.find(name)
	if !ok {
		return &TaskNotFoundError{Name: name}
	}

	return task.Action(ctx)
}

func (c *TaskContainer) find(name string) (Task, bool) {
	for _, task := range c.tasks {
		if task.Name == name {
			return task, true
		}
	}

	return Task{}, false
}
