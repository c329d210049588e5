package advisory

import "strings"

// Course catalog identifiers for the deterministic recommendation path.
const (
	CourseWebDev   = "c1"
	CourseJava     = "c2"
	CoursePython   = "c3"
	CourseDatabase = "c4"
)

// RecommendCourse keyword-matches a career goal against the fixed course
// catalog tag set. This path never calls the remote service and never
// fails; unmatched goals get the default web development course.
func RecommendCourse(goal string) string {
	g := strings.ToLower(goal)
	switch {
	case strings.Contains(g, "web") || strings.Contains(g, "react"):
		return CourseWebDev
	case strings.Contains(g, "java"):
		return CourseJava
	case strings.Contains(g, "python") || strings.Contains(g, "data"):
		return CoursePython
	case strings.Contains(g, "sql") || strings.Contains(g, "base"):
		return CourseDatabase
	default:
		return CourseWebDev
	}
}
