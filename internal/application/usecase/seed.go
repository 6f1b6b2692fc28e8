package usecase

import (
	"context"
	"log"
	"time"

	"lmsplatform/internal/domain"
)

// Seeder fills an empty database with a demo course.
type Seeder struct {
	users       UserRepository
	courses     CourseRepository
	modules     ModuleRepository
	lessons     LessonRepository
	assignments AssignmentRepository
	hasher      PasswordHasher
	now         func() time.Time
}

func NewSeeder(ur UserRepository, cr CourseRepository, mr ModuleRepository, lr LessonRepository, ar AssignmentRepository, h PasswordHasher) *Seeder {
	return &Seeder{
		users:       ur,
		courses:     cr,
		modules:     mr,
		lessons:     lr,
		assignments: ar,
		hasher:      h,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type seedUser struct {
	username, email, password, first, last string
	role                                   domain.UserRole
}

var seedUsers = []seedUser{
	{"admin", "admin@lms.com", "admin123", "Admin", "User", domain.RoleAdmin},
	{"instructor", "instructor@lms.com", "instructor123", "John", "Doe", domain.RoleInstructor},
	{"student1", "student1@lms.com", "student123", "Alice", "Johnson", domain.RoleStudent},
	{"student2", "student2@lms.com", "student123", "Bob", "Smith", domain.RoleStudent},
}

type seedLesson struct {
	title, content string
}

type seedModule struct {
	title, description string
	lessons            []seedLesson
}

var seedModules = []seedModule{
	{
		title:       "Getting Started with Java",
		description: "Introduction to Java basics, setting up development environment, and writing your first program.",
		lessons: []seedLesson{
			{"What is Java?", "Java is a high-level, class-based, object-oriented programming language that is designed to have as few implementation dependencies as possible."},
			{"Setting up Java Development Environment", "Learn how to install Java JDK, set up environment variables, and configure your IDE for Java development."},
			{"Your First Java Program", "Write and run your first Java program. Learn about the main method, System.out.println, and basic syntax."},
		},
	},
	{
		title:       "Object-Oriented Programming",
		description: "Learn about classes, objects, inheritance, polymorphism, and encapsulation in Java.",
		lessons: []seedLesson{
			{"Classes and Objects", "Understand the relationship between classes and objects. Learn how to create classes and instantiate objects."},
			{"Inheritance", "Learn about inheritance in Java, how to extend classes, and use the 'extends' keyword."},
		},
	},
}

// Seed runs only against a database without users. It reports whether it
// wrote anything.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	var instructor *domain.User
	for _, su := range seedUsers {
		hash, err := s.hasher.Hash(su.password)
		if err != nil {
			return false, err
		}
		u, err := domain.NewUser(su.username, su.email, hash, su.first, su.last, su.role)
		if err != nil {
			return false, err
		}
		if err := s.users.Save(ctx, u); err != nil {
			return false, err
		}
		if u.IsInstructor() {
			instructor = u
		}
	}

	now := s.now()
	course, err := domain.NewCourse(
		"Introduction to Java Programming",
		"Learn the fundamentals of Java programming language including OOP concepts, data structures, and best practices.",
		"JAVA101",
		instructor.ID,
	)
	if err != nil {
		return false, err
	}
	maxEnrollments := 50
	end := now.AddDate(0, 3, 0)
	course.Published = true
	course.StartDate = &now
	course.EndDate = &end
	course.MaxEnrollments = &maxEnrollments
	if err := s.courses.Save(ctx, course); err != nil {
		return false, err
	}

	for i, sm := range seedModules {
		m, err := domain.NewModule(course.ID, sm.title, sm.description, i+1)
		if err != nil {
			return false, err
		}
		m.Published = true
		m.EstimatedDurationMinutes = intPtr(120)
		if err := s.modules.Save(ctx, m); err != nil {
			return false, err
		}
		for j, sl := range sm.lessons {
			l, err := domain.NewLesson(m.ID, sl.title, sl.content, j+1)
			if err != nil {
				return false, err
			}
			l.Published = true
			l.EstimatedDurationMinutes = intPtr(30)
			if err := s.lessons.Save(ctx, l); err != nil {
				return false, err
			}
		}
	}

	if err := s.seedAssignment(ctx, course, "Hello World Program",
		"Create a simple Java program that prints 'Hello, World!' to the console. Submit your source code file.",
		now.AddDate(0, 0, 7), 50); err != nil {
		return false, err
	}
	if err := s.seedAssignment(ctx, course, "Simple Calculator",
		"Create a basic calculator class with methods for addition, subtraction, multiplication, and division. Include proper error handling.",
		now.AddDate(0, 0, 14), 100); err != nil {
		return false, err
	}

	s.logCounts(ctx)
	return true, nil
}

func (s *Seeder) seedAssignment(ctx context.Context, course *domain.Course, title, description string, due time.Time, maxPoints int) error {
	a, err := domain.NewAssignment(course.ID, title, description)
	if err != nil {
		return err
	}
	a.DueDate = &due
	a.MaxPoints = maxPoints
	a.Published = true
	a.AllowLateSubmission = true
	return s.assignments.Save(ctx, a)
}

func (s *Seeder) logCounts(ctx context.Context) {
	users, _ := s.users.Count(ctx)
	courses, _ := s.courses.Count(ctx)
	modules, _ := s.modules.Count(ctx)
	lessons, _ := s.lessons.Count(ctx)
	assignments, _ := s.assignments.Count(ctx)
	log.Printf(">>> DB seeded: users=%d courses=%d modules=%d lessons=%d assignments=%d",
		users, courses, modules, lessons, assignments)
}

func intPtr(v int) *int { return &v }
