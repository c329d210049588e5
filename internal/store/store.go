package store

import "campusworks/internal/types"

// Memory bundles the portal's in-memory collections. The workflow engine
// is the only writer of applications and notifications; jobs and courses
// are read-only catalog data after seeding.
type Memory struct {
	Users         *Collection[types.User]
	Jobs          *Collection[types.Job]
	Courses       *Collection[types.Course]
	Applications  *Collection[types.Application]
	Notifications *Collection[types.Notification]
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		Users:         NewCollection[types.User](),
		Jobs:          NewCollection[types.Job](),
		Courses:       NewCollection[types.Course](),
		Applications:  NewCollection[types.Application](),
		Notifications: NewCollection[types.Notification](),
	}
}
