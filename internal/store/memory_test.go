package store

import (
	"fmt"
	"testing"

	"campusworks/internal/types"
)

func TestCollectionInsertionOrder(t *testing.T) {
	c := NewCollection[string]()
	for i := 0; i < 5; i++ {
		c.Insert(fmt.Sprintf("id%d", i), fmt.Sprintf("v%d", i))
	}

	got := c.List()
	want := []string{"v0", "v1", "v2", "v3", "v4"}
	if len(got) != len(want) {
		t.Fatalf("List() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectionInsertOverwriteKeepsOrder(t *testing.T) {
	c := NewCollection[int]()
	c.Insert("a", 1)
	c.Insert("b", 2)
	c.Insert("a", 10)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	got := c.List()
	if got[0] != 10 || got[1] != 2 {
		t.Errorf("List() = %v, want [10 2]", got)
	}
}

func TestCollectionFind(t *testing.T) {
	c := NewCollection[int]()
	for i := 1; i <= 6; i++ {
		c.Insert(fmt.Sprintf("id%d", i), i)
	}

	even := c.Find(func(n int) bool { return n%2 == 0 })
	if len(even) != 3 || even[0] != 2 || even[2] != 6 {
		t.Errorf("Find(even) = %v, want [2 4 6]", even)
	}

	first, ok := c.FindOne(func(n int) bool { return n > 3 })
	if !ok || first != 4 {
		t.Errorf("FindOne(>3) = %v, %v; want 4, true", first, ok)
	}

	if _, ok := c.FindOne(func(n int) bool { return n > 100 }); ok {
		t.Error("FindOne with no match reported ok")
	}
}

func TestCollectionUpdate(t *testing.T) {
	c := NewCollection[int]()
	c.Insert("a", 1)

	if !c.Update("a", func(n int) int { return n + 10 }) {
		t.Fatal("Update on existing id returned false")
	}
	if v, _ := c.Get("a"); v != 11 {
		t.Errorf("Get after Update = %d, want 11", v)
	}

	if c.Update("missing", func(n int) int { return n }) {
		t.Error("Update on unknown id returned true")
	}
}

func TestSeededCatalog(t *testing.T) {
	m := Seeded()

	if got := m.Users.Len(); got != 3 {
		t.Errorf("Users.Len() = %d, want 3", got)
	}
	if got := m.Jobs.Len(); got != 4 {
		t.Errorf("Jobs.Len() = %d, want 4", got)
	}
	if got := m.Courses.Len(); got != 4 {
		t.Errorf("Courses.Len() = %d, want 4", got)
	}
	if got := m.Applications.Len(); got != 1 {
		t.Errorf("Applications.Len() = %d, want 1", got)
	}
	if got := m.Notifications.Len(); got != 2 {
		t.Errorf("Notifications.Len() = %d, want 2", got)
	}

	app, ok := m.Applications.Get("a1")
	if !ok {
		t.Fatal("seeded application a1 missing")
	}
	if app.Status != types.StatusApproved {
		t.Errorf("a1 Status = %s, want Approved", app.Status)
	}
	if app.ResumeSnapshot == nil {
		t.Error("seeded application should carry a resume snapshot")
	}

	student, ok := m.Users.Get("s1")
	if !ok {
		t.Fatal("seeded student s1 missing")
	}
	if student.Role != types.RoleStudent {
		t.Errorf("s1 Role = %s, want student", student.Role)
	}
	if student.Resume == nil || len(student.Resume.Experience) == 0 {
		t.Error("seeded student should carry a resume with experience entries")
	}

	admin, ok := m.Users.FindOne(func(u types.User) bool { return u.Role == types.RoleAdmin })
	if !ok {
		t.Fatal("no seeded admin account")
	}
	for _, j := range m.Jobs.List() {
		if j.AdminID != admin.ID {
			t.Errorf("job %s AdminID = %s, want %s", j.ID, j.AdminID, admin.ID)
		}
	}
}
