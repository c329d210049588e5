package store

import (
	"time"

	"campusworks/internal/types"
)

// Seeded returns a store populated with the demo catalog: the portal's
// jobs, courses, and accounts, plus one already-approved application and
// its notification trail. Job postings are administered by the admin
// account.
func Seeded() *Memory {
	m := NewMemory()

	for _, u := range seedUsers() {
		m.Users.Insert(u.ID, u)
	}
	for _, j := range seedJobs() {
		m.Jobs.Insert(j.ID, j)
	}
	for _, c := range seedCourses() {
		m.Courses.Insert(c.ID, c)
	}
	for _, a := range seedApplications() {
		m.Applications.Insert(a.ID, a)
	}
	for _, n := range seedNotifications() {
		m.Notifications.Insert(n.ID, n)
	}

	return m
}

func seedUsers() []types.User {
	return []types.User{
		{
			ID:       "u1",
			Email:    "admin@edu.com",
			Password: "admin",
			Name:     "Sarah Administrator",
			Role:     types.RoleAdmin,
			Avatar:   "S",
		},
		{
			ID:       "s1",
			Email:    "student@edu.com",
			Password: "123",
			Name:     "Alice Johnson",
			Role:     types.RoleStudent,
			Avatar:   "A",
			Resume: &types.Resume{
				Summary:    "Computer Science Major with a passion for web development and campus community service.",
				GPA:        "3.8",
				Experience: []string{"Library Volunteer (2022)", "Hackathon Winner (2023)"},
			},
		},
		{
			ID:       "p1",
			Email:    "pro@career.com",
			Password: "123",
			Name:     "Mike Professional",
			Role:     types.RolePro,
			Avatar:   "M",
		},
	}
}

func seedJobs() []types.Job {
	return []types.Job{
		{
			ID:          "j1",
			Title:       "Library Assistant",
			Dept:        "Library Services",
			Pay:         "$15/hr",
			Description: "Assist students with research, organize shelves, and manage the front desk during evening hours.",
			Skills:      []string{"Organization", "Customer Service"},
			AdminID:     "u1",
		},
		{
			ID:          "j2",
			Title:       "IT Helpdesk Support",
			Dept:        "IT Department",
			Pay:         "$18/hr",
			Description: "Level 1 tech support for campus computers. Must know how to troubleshoot Windows and MacOS issues.",
			Skills:      []string{"Windows", "Troubleshooting"},
			AdminID:     "u1",
		},
		{
			ID:          "j3",
			Title:       "Research Aide",
			Dept:        "Biology Lab",
			Pay:         "$16/hr",
			Description: "Clean equipment and log data samples for the new genome project. Requires safety certification.",
			Skills:      []string{"Data Entry", "Lab Safety"},
			AdminID:     "u1",
		},
		{
			ID:          "j4",
			Title:       "Campus Tour Guide",
			Dept:        "Student Affairs",
			Pay:         "$14/hr",
			Description: "Lead prospective students on tours around campus. Must have good public speaking skills and know campus history.",
			Skills:      []string{"Public Speaking", "History"},
			AdminID:     "u1",
		},
	}
}

func seedApplications() []types.Application {
	return []types.Application{
		{
			ID:          "a1",
			JobID:       "j3",
			JobTitle:    "Research Aide",
			StudentID:   "s1",
			StudentName: "Alice Johnson",
			Status:      types.StatusApproved,
			ResumeSnapshot: &types.Resume{
				Summary:    "Computer Science Major with a passion for web development and campus community service.",
				GPA:        "3.8",
				Experience: []string{"Library Volunteer (2022)", "Hackathon Winner (2023)"},
			},
			CoverLetter: "I have lab safety certification from my freshman chemistry track.",
			CreatedAt:   time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
		},
	}
}

func seedNotifications() []types.Notification {
	return []types.Notification{
		{
			ID:        "n1",
			UserID:    "u1",
			Message:   "New application for Research Aide from Alice Johnson",
			Read:      true,
			CreatedAt: time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "n2",
			UserID:    "s1",
			Message:   "Your application for Research Aide was Approved",
			Read:      false,
			CreatedAt: time.Date(2025, 8, 21, 14, 30, 0, 0, time.UTC),
		},
	}
}

func seedCourses() []types.Course {
	return []types.Course{
		{
			ID:          "c1",
			Title:       "Full Stack Web Development",
			Description: "Master the MERN stack (MongoDB, Express, React, Node) and build modern web applications.",
			Tags:        []string{"React", "Node.js", "Web"},
			Modules: []types.CourseModule{
				{ID: "m1", Title: "HTML5 & CSS3 Architecture", Content: "In this module, we dive deep into Semantic HTML5 elements and modern CSS layout techniques including Flexbox and CSS Grid."},
				{ID: "m2", Title: "JavaScript ES6+ Deep Dive", Content: "Master the new features of JavaScript: Arrow functions, Destructuring, Promises, and Async/Await."},
				{ID: "m3", Title: "React: Components & State", Content: "Learn the core of React: Functional Components, Hooks (useState, useEffect), and managing data flow."},
				{ID: "m4", Title: "Node.js & Express API", Content: "Build robust RESTful APIs using Node.js and Express. Connect your frontend to a backend server."},
			},
		},
		{
			ID:          "c2",
			Title:       "Java Full Stack Bootcamp",
			Description: "Enterprise-grade development using Java, Spring Boot, and Angular.",
			Tags:        []string{"Java", "Spring Boot", "Angular"},
			Modules: []types.CourseModule{
				{ID: "m1", Title: "Java Core Fundamentals", Content: "Object-Oriented Programming (OOP) concepts: Inheritance, Polymorphism, Encapsulation, and Abstraction."},
				{ID: "m2", Title: "Spring Boot Basics", Content: "Introduction to Dependency Injection, Inversion of Control, and building Microservices."},
				{ID: "m3", Title: "Hibernate & JPA", Content: "Managing database operations using Java Persistence API (JPA) and Hibernate ORM."},
			},
		},
		{
			ID:          "c3",
			Title:       "Python Mastery",
			Description: "From scripting to data analysis. Learn the language that powers AI and Data Science.",
			Tags:        []string{"Python", "Data", "Scripting"},
			Modules: []types.CourseModule{
				{ID: "m1", Title: "Python Syntax", Content: "Lists, Dictionaries, Tuples, and Sets. Control flow and error handling in Python."},
				{ID: "m2", Title: "Data Handling with Pandas", Content: "Loading dataframes, cleaning data, and performing basic statistical analysis."},
			},
		},
		{
			ID:          "c4",
			Title:       "Database Management Systems",
			Description: "Learn SQL and NoSQL database design, querying, and optimization.",
			Tags:        []string{"SQL", "MongoDB", "Data"},
			Modules: []types.CourseModule{
				{ID: "m1", Title: "Relational Design & SQL", Content: "ER Diagrams, Normalization, and writing complex JOIN queries in PostgreSQL."},
				{ID: "m2", Title: "NoSQL with MongoDB", Content: "Document-based storage, Collections, and aggregation pipelines."},
			},
		},
	}
}
