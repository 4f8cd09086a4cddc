package cli

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
)

func (s *Shell) adminMenu(ctx context.Context, a *models.AdminActor) error {
	for {
		s.println("\n=== Admin Menu ===")
		s.println("1. Manage Users")
		s.println("2. List Users")
		s.println("3. Add Department")
		s.println("4. Show All Grades")
		s.println("5. Show All Attendance")
		s.println("6. Add Course")
		s.println("7. Assign Professor")
		s.println("8. Manage Student Fees")
		s.println("9. Logout")
		choice, err := s.choice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = s.manageUsers(ctx)
		case 2:
			err = s.listUsers(ctx)
		case 3:
			err = s.addDepartment(ctx)
		case 4:
			err = s.showAllGrades(ctx)
		case 5:
			err = s.showAllAttendance(ctx)
		case 6:
			err = s.addCourse(ctx)
		case 7:
			err = s.assignProfessor(ctx)
		case 8:
			err = s.manageFees(ctx)
		case 9:
			s.logger.Debug().Int64("adminID", a.User.ID).Msg("Admin logout")
			return nil
		default:
			s.println("Invalid choice!")
		}
		if err := s.fail(err); err != nil {
			return err
		}
	}
}

func (s *Shell) manageUsers(ctx context.Context) error {
	for {
		s.println("\n=== User Management ===")
		s.println("1. Add Student")
		s.println("2. Add Professor")
		s.println("3. Back")
		choice, err := s.choice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = s.addStudent(ctx)
		case 2:
			err = s.addProfessor(ctx)
		case 3:
			return nil
		default:
			s.println("Invalid choice!")
		}
		if err := s.fail(err); err != nil {
			return err
		}
	}
}

func (s *Shell) readAccount() (dto.CreateAccountRequest, error) {
	var req dto.CreateAccountRequest
	var err error
	if req.Username, err = s.prompt("Username: "); err != nil {
		return req, err
	}
	if req.Password, err = s.prompt("Password: "); err != nil {
		return req, err
	}
	if req.Name, err = s.prompt("Full Name: "); err != nil {
		return req, err
	}
	if req.Email, err = s.prompt("Email: "); err != nil {
		return req, err
	}
	return req, nil
}

// listDepartments prints every department and reports whether there is any
func (s *Shell) listDepartments(ctx context.Context) (bool, error) {
	departments, err := s.svc.Departments.GetAllDepartments(ctx)
	if err != nil {
		return false, err
	}
	if len(departments) == 0 {
		s.println("No departments found! Add departments first.")
		return false, nil
	}
	s.println("\nAvailable Departments:")
	s.printDepartments(departments)
	return true, nil
}

func (s *Shell) addStudent(ctx context.Context) error {
	account, err := s.readAccount()
	if err != nil {
		return err
	}
	ok, err := s.listDepartments(ctx)
	if err != nil || !ok {
		return err
	}
	departmentID, err := s.promptInt("Department ID: ")
	if err != nil {
		return err
	}

	student, err := s.svc.Accounts.CreateStudent(ctx, dto.CreateStudentRequest{
		CreateAccountRequest: account,
		DepartmentID:         departmentID,
	})
	if err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", student.ID).Msg("Student created from menu")
	s.println("Student created successfully!")
	return nil
}

func (s *Shell) addProfessor(ctx context.Context) error {
	account, err := s.readAccount()
	if err != nil {
		return err
	}
	professor, err := s.svc.Accounts.CreateProfessor(ctx, dto.CreateProfessorRequest{CreateAccountRequest: account})
	if err != nil {
		return err
	}
	s.logger.Info().Int64("professorID", professor.ID).Msg("Professor created from menu")
	s.println("Professor created successfully!")
	return nil
}

var userFilters = map[int]models.UserFilter{
	1: models.FilterAll,
	2: models.FilterStudents,
	3: models.FilterProfessors,
}

func (s *Shell) listUsers(ctx context.Context) error {
	s.println("\n=== List Users ===")
	s.println("1. All Users")
	s.println("2. Students Only")
	s.println("3. Professors Only")
	choice, err := s.choice()
	if err != nil {
		return err
	}
	filter, ok := userFilters[choice]
	if !ok {
		s.println("Invalid choice!")
		return nil
	}

	users, err := s.svc.Accounts.ListUsers(ctx, filter)
	if err != nil {
		return err
	}
	s.printUsers(users)
	return nil
}

func (s *Shell) addDepartment(ctx context.Context) error {
	name, err := s.prompt("Department Name: ")
	if err != nil {
		return err
	}
	if _, err := s.svc.Departments.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: name}); err != nil {
		return err
	}
	s.println("Department added successfully!")
	return nil
}

func (s *Shell) showAllGrades(ctx context.Context) error {
	grades, err := s.svc.Grades.ListAllGrades(ctx)
	if err != nil {
		return err
	}
	s.println("\n=== All Grades ===")
	s.printGrades(grades, true)
	return nil
}

func (s *Shell) showAllAttendance(ctx context.Context) error {
	records, err := s.svc.Attendance.ListAll(ctx)
	if err != nil {
		return err
	}
	s.println("\n=== All Attendance ===")
	s.printAttendance(records, true)
	return nil
}

func (s *Shell) addCourse(ctx context.Context) error {
	ok, err := s.listDepartments(ctx)
	if err != nil || !ok {
		return err
	}
	departmentID, err := s.promptInt("Select Department ID: ")
	if err != nil {
		return err
	}
	name, err := s.prompt("Course Name: ")
	if err != nil {
		return err
	}
	courseType, err := s.prompt("Course Type (theoretical/practical): ")
	if err != nil {
		return err
	}

	if _, err := s.svc.Courses.CreateCourse(ctx, dto.CreateCourseRequest{
		Name:         name,
		DepartmentID: departmentID,
		Type:         courseType,
	}); err != nil {
		return err
	}
	s.println("Course added successfully!")
	return nil
}

func (s *Shell) assignProfessor(ctx context.Context) error {
	s.println("\n=== Assign Professor ===")
	professors, err := s.svc.Accounts.ListUsers(ctx, models.FilterProfessors)
	if err != nil {
		return err
	}
	if len(professors) == 0 {
		s.println("No professors found!")
		return nil
	}
	for _, p := range professors {
		s.printf("%d. %s\n", p.ID, p.Name)
	}
	professorID, err := s.promptInt("Select Professor ID: ")
	if err != nil {
		return err
	}

	ok, err := s.listDepartments(ctx)
	if err != nil || !ok {
		return err
	}
	departmentID, err := s.promptInt("Select Department ID: ")
	if err != nil {
		return err
	}

	courses, err := s.svc.Courses.GetCoursesByDepartment(ctx, departmentID)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		// only the department link is recorded
		if err := s.svc.Enrollment.AssignProfessorToDepartment(ctx, professorID, departmentID); err != nil {
			return err
		}
		s.println("No courses found in this department!")
		return nil
	}
	s.printCourses(courses)
	courseID, err := s.promptInt("Select Course ID: ")
	if err != nil {
		return err
	}

	if err := s.svc.Enrollment.AssignProfessor(ctx, professorID, departmentID, courseID); err != nil {
		return err
	}
	s.println("Professor assigned successfully!")
	return nil
}

func (s *Shell) manageFees(ctx context.Context) error {
	s.println("\n=== Manage Student Fees ===")
	students, err := s.svc.Fees.ListStudentFees(ctx)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		s.println("No students found!")
		return nil
	}
	rows := make([][]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, []string{id(st.ID), st.Name, money(st.FeesDue), money(st.FeesPaid), money(st.Balance())})
	}
	s.table([]string{"ID", "Name", "Due", "Paid", "Balance"}, rows)

	studentID, err := s.promptInt("Enter Student ID to update fees: ")
	if err != nil {
		return err
	}
	amount, err := s.promptFloat("Enter payment amount: ")
	if err != nil {
		return err
	}

	updated, err := s.svc.Fees.RecordPayment(ctx, studentID, amount)
	if err != nil {
		return err
	}
	s.println("Fees updated successfully!")
	s.printf("Balance: $%s\n", money(updated.Balance()))
	return nil
}
