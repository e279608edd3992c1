package models

// RegisterForm represents the registration form posted to /user.
type RegisterForm struct {
	Username   string `validate:"required,max=255"`
	Password   string `validate:"required,maxbytes=72"`
	EmployeeID string `validate:"required,max=64"`
	FirstName  string `validate:"required,max=255"`
	LastName   string `validate:"required,max=255"`
	Phone      string `validate:"max=64"`
	Department string `validate:"required,max=255"`
	JobTitle   string `validate:"required,max=255"`
	Level      string `validate:"required,max=64"`
	TeamLeader string `validate:"required,max=255"`
	Duration   string `validate:"required,max=64"`
}

// User builds an unsaved user from the form. The password is marked for
// hashing.
func (f RegisterForm) User() *User {
	u := &User{
		Username:   f.Username,
		EmployeeID: f.EmployeeID,
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Department: f.Department,
		JobTitle:   f.JobTitle,
		Level:      f.Level,
		TeamLeader: f.TeamLeader,
		Duration:   f.Duration,
	}
	if f.Phone != "" {
		phone := f.Phone
		u.Phone = &phone
	}
	u.SetPassword(f.Password)
	return u
}
