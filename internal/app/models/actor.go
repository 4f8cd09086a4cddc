package models

// Actor is the authenticated principal returned by login. It is one of
// *AdminActor, *ProfessorActor or *StudentActor.
type Actor interface {
	Account() *User
	isActor()
}

// AdminActor can manage every record
type AdminActor struct {
	User *User
}

// ProfessorActor carries the professor's assignments at login time
type ProfessorActor struct {
	Professor *Professor
}

// StudentActor carries the student's record at login time
type StudentActor struct {
	Student *Student
}

func (a *AdminActor) Account() *User     { return a.User }
func (a *ProfessorActor) Account() *User { return &a.Professor.User }
func (a *StudentActor) Account() *User   { return &a.Student.User }

func (*AdminActor) isActor()     {}
func (*ProfessorActor) isActor() {}
func (*StudentActor) isActor()   {}
