// Package task holds the in-memory task list and its operations.
//
// A Store keeps tasks in insertion order and assigns integer ids itself:
//
//	s := task.NewStore()
//	t, err := s.Add("Write report", task.PriorityHigh)
//	_, err = s.Complete(t.ID)
//	for t := range s.List(task.FilterPending) {
//		fmt.Println(t.ID, t.Title)
//	}
//
// # Ids
//
// Ids start at 1 and only grow. The store remembers the highest id it has
// ever handed out (NextID), so removing the newest task does not make its id
// available again. Persisting NextID alongside the tasks keeps that guarantee
// across restarts.
//
// # Completion
//
// Completion is one-way. Completing a task sets CompletedAt once; a second
// Complete on the same id returns ErrAlreadyCompleted and leaves the task
// untouched.
//
// # Priority Values
//
//   - "Low"
//   - "Medium" (default)
//   - "High"
//
// The store performs no I/O. Loading and saving live in package storage.
package task
