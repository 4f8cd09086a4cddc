package cli

import (
	"context"
	"errors"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/helpers"
)

// errNoSelection means the user backed out of a selection and was already told why
var errNoSelection = errors.New("nothing selected")

func (s *Shell) professorMenu(ctx context.Context, a *models.ProfessorActor) error {
	professorID := a.Professor.ID
	for {
		s.println("\n=== Professor Menu ===")
		s.println("1. View Profile")
		s.println("2. Add Attendance")
		s.println("3. Add Grades")
		s.println("4. Show Students")
		s.println("5. Logout")
		choice, err := s.choice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = s.showProfessorProfile(ctx, professorID)
		case 2:
			err = s.addAttendance(ctx, professorID)
		case 3:
			err = s.addGrades(ctx, professorID)
		case 4:
			err = s.showCourseStudents(ctx, professorID)
		case 5:
			return nil
		default:
			s.println("Invalid choice!")
		}
		if err := s.fail(err); err != nil {
			return err
		}
	}
}

func (s *Shell) showProfessorProfile(ctx context.Context, professorID int64) error {
	p, err := s.svc.Enrollment.ProfessorProfile(ctx, professorID)
	if err != nil {
		return err
	}
	s.println("\n=== Professor Profile ===")
	s.printf("Name: %s\n", p.Name)
	s.printf("Email: %s\n", p.Email)
	s.println("Departments:")
	if len(p.Departments) == 0 {
		s.println("  (none)")
	}
	for _, d := range p.Departments {
		s.printf("  - %s\n", d.Name)
	}
	s.println("Courses:")
	if len(p.Courses) == 0 {
		s.println("  (none)")
	}
	for _, c := range p.Courses {
		s.printf("  - %s (%s, %s)\n", c.Name, c.Type, c.DepartmentName)
	}
	return nil
}

// selectCourse lists the professor's courses by position and returns the chosen one
func (s *Shell) selectCourse(ctx context.Context, professorID int64) (*models.Course, error) {
	p, err := s.svc.Enrollment.ProfessorProfile(ctx, professorID)
	if err != nil {
		return nil, err
	}
	if len(p.Courses) == 0 {
		s.println("You have no courses assigned!")
		return nil, errNoSelection
	}

	s.println("Select course:")
	for i, c := range p.Courses {
		s.printf("%d. %s (%s)\n", i+1, c.Name, c.Type)
	}
	n, err := s.choice()
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(p.Courses) {
		s.println("Invalid choice!")
		return nil, errNoSelection
	}
	return p.Courses[n-1], nil
}

// courseStudents selects a course and loads the students the professor may act on in it
func (s *Shell) courseStudents(ctx context.Context, professorID int64) (*models.Course, []*models.Student, error) {
	course, err := s.selectCourse(ctx, professorID)
	if err != nil {
		return nil, nil, err
	}
	students, err := s.svc.Enrollment.StudentsForCourse(ctx, professorID, course.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(students) == 0 {
		s.println("No students found for this course!")
		return nil, nil, errNoSelection
	}
	return course, students, nil
}

func (s *Shell) addAttendance(ctx context.Context, professorID int64) error {
	course, students, err := s.courseStudents(ctx, professorID)
	if errors.Is(err, errNoSelection) {
		return nil
	}
	if err != nil {
		return err
	}

	s.printf("\nEnter attendance for %s:\n", helpers.Today(s.now))
	recorded := 0
	for _, st := range students {
		answer, err := s.prompt(st.Name + " (p/a): ")
		if err != nil {
			return err
		}
		status, err := models.ParseAttendanceStatus(answer)
		if err != nil {
			s.printf("Skipped %s: %s\n", st.Name, err)
			continue
		}
		if _, err := s.svc.Attendance.MarkAsProfessor(ctx, professorID, st.ID, course.ID, status); err != nil {
			s.report(err)
			continue
		}
		recorded++
	}

	s.logger.Info().Int64("courseID", course.ID).Int("recorded", recorded).Msg("Attendance entered")
	s.println("Attendance recorded successfully!")
	return nil
}

// weightLabels are the prompt percentages of each component per course type
var weightLabels = map[models.CourseType][4]string{
	models.CourseTheoretical: {"20%", "20%", "0%", "60%"},
	models.CoursePractical:   {"20%", "30%", "20%", "30%"},
}

func (s *Shell) addGrades(ctx context.Context, professorID int64) error {
	course, students, err := s.courseStudents(ctx, professorID)
	if errors.Is(err, errNoSelection) {
		return nil
	}
	if err != nil {
		return err
	}

	labels := weightLabels[course.Type]
	s.printf("\nEnter grades for course (%s):\n", course.Type)
	for _, st := range students {
		s.printf("\nStudent: %s\n", st.Name)
		scores, err := s.readScores(labels)
		if errors.Is(err, errInputClosed) {
			return err
		}
		if err != nil {
			s.report(err)
			continue
		}

		grade, err := s.svc.Grades.RecordGradeAsProfessor(ctx, professorID, st.ID, course.ID, scores)
		if err != nil {
			s.report(err)
			continue
		}
		s.printf("Total: %.2f (%s)\n", grade.Total, grade.Letter)
	}
	return nil
}

func (s *Shell) readScores(labels [4]string) (models.Scores, error) {
	var sc models.Scores
	fields := []struct {
		name string
		dst  *float64
	}{
		{"Assignment 1", &sc.Assignment1},
		{"Assignment 2", &sc.Assignment2},
		{"Coursework", &sc.Coursework},
		{"Final Exam", &sc.FinalExam},
	}
	for i, f := range fields {
		v, err := s.promptFloat(f.name + " (" + labels[i] + "): ")
		if err != nil {
			return sc, err
		}
		*f.dst = v
	}
	return sc, nil
}

func (s *Shell) showCourseStudents(ctx context.Context, professorID int64) error {
	_, students, err := s.courseStudents(ctx, professorID)
	if errors.Is(err, errNoSelection) {
		return nil
	}
	if err != nil {
		return err
	}

	s.println("\nStudents enrolled:")
	rows := make([][]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, []string{st.Name, id(st.ID)})
	}
	s.table([]string{"Name", "Student ID"}, rows)
	return nil
}
