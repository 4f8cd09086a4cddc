package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/yigit/registrar/internal/app/models"
)

// table writes tab-separated rows as aligned columns with a dashed rule under the header
func (s *Shell) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(rule, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func score(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func id(v int64) string {
	return fmt.Sprintf("%d", v)
}

func (s *Shell) printUsers(users []*models.User) {
	if len(users) == 0 {
		s.println("No users found!")
		return
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{id(u.ID), u.Username, u.Name, u.Email, string(u.Role)})
	}
	s.table([]string{"ID", "Username", "Name", "Email", "Role"}, rows)
}

func (s *Shell) printDepartments(departments []*models.Department) {
	for _, d := range departments {
		s.printf("%d. %s\n", d.ID, d.Name)
	}
}

func (s *Shell) printCourses(courses []*models.Course) {
	for _, c := range courses {
		s.printf("%d. %s (%s)\n", c.ID, c.Name, c.Type)
	}
}

// printGrades renders grade rows. withStudent adds the student name column.
func (s *Shell) printGrades(grades []*models.GradeRecord, withStudent bool) {
	if len(grades) == 0 {
		s.println("No grades found!")
		return
	}
	header := []string{"Course", "Type", "A1", "A2", "CW", "Final", "Total", "Grade"}
	if withStudent {
		header = append([]string{"Student"}, header...)
	}
	rows := make([][]string, 0, len(grades))
	for _, g := range grades {
		row := []string{g.CourseName, string(g.CourseType), score(g.Assignment1), score(g.Assignment2),
			score(g.Coursework), score(g.FinalExam), score(g.Total), g.Letter}
		if withStudent {
			row = append([]string{g.StudentName}, row...)
		}
		rows = append(rows, row)
	}
	s.table(header, rows)
}

// printAttendance renders attendance rows. withStudent adds the student name column.
func (s *Shell) printAttendance(records []*models.AttendanceRecord, withStudent bool) {
	if len(records) == 0 {
		s.println("No attendance records found!")
		return
	}
	header := []string{"Course", "Date", "Status"}
	if withStudent {
		header = append([]string{"Student"}, header...)
	}
	rows := make([][]string, 0, len(records))
	for _, a := range records {
		row := []string{a.CourseName, a.Date, string(a.Status)}
		if withStudent {
			row = append([]string{a.StudentName}, row...)
		}
		rows = append(rows, row)
	}
	s.table(header, rows)
}

func (s *Shell) printFees(student *models.Student) {
	s.println("\n=== Fee Details ===")
	s.printf("Fees Due: $%s\n", money(student.FeesDue))
	s.printf("Fees Paid: $%s\n", money(student.FeesPaid))
	s.printf("Balance: $%s\n", money(student.Balance()))
}
