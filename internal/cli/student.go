package cli

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
)

func (s *Shell) studentMenu(ctx context.Context, a *models.StudentActor) error {
	studentID := a.Student.ID
	for {
		s.println("\n=== Student Menu ===")
		s.println("1. Show Profile")
		s.println("2. Show Attendance")
		s.println("3. Show Fees")
		s.println("4. Show Grades")
		s.println("5. Logout")
		choice, err := s.choice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			s.showStudentProfile(a.Student)
		case 2:
			records, err := s.svc.Attendance.ListForStudent(ctx, studentID)
			if err != nil {
				s.report(err)
				continue
			}
			s.println("\n=== Attendance ===")
			s.printAttendance(records, false)
		case 3:
			student, err := s.svc.Fees.GetStudentFees(ctx, studentID)
			if err != nil {
				s.report(err)
				continue
			}
			s.printFees(student)
		case 4:
			grades, err := s.svc.Grades.ListGradesForStudent(ctx, studentID)
			if err != nil {
				s.report(err)
				continue
			}
			s.println("\n=== Grades ===")
			s.printGrades(grades, false)
		case 5:
			return nil
		default:
			s.println("Invalid choice!")
		}
	}
}

func (s *Shell) showStudentProfile(st *models.Student) {
	s.println("\n=== Student Profile ===")
	s.printf("Name: %s\n", st.Name)
	s.printf("Username: %s\n", st.Username)
	s.printf("Email: %s\n", st.Email)
	s.printf("Department: %s\n", st.DepartmentName)
}
