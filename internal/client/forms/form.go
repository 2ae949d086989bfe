// Package forms holds the login and registration form state, validates it
// according to the surface's policy and submits it to the session.
package forms

// Field names a form input.
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldFullName        Field = "fullName"
	FieldPhoneNumber     Field = "phoneNumber"
	FieldConfirmPassword Field = "confirmPassword"
)

// LoginForm is an immutable login form record.
type LoginForm struct {
	Email    string
	Password string
}

// With returns a copy of f with field set to value. Fields the login form
// does not have are ignored.
func (f LoginForm) With(field Field, value string) LoginForm {
	switch field {
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	}
	return f
}

// RegisterForm is an immutable registration form record. ConfirmPassword is
// only checked by policies that ask for it.
type RegisterForm struct {
	FullName        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// With returns a copy of f with field set to value.
func (f RegisterForm) With(field Field, value string) RegisterForm {
	switch field {
	case FieldFullName:
		f.FullName = value
	case FieldEmail:
		f.Email = value
	case FieldPhoneNumber:
		f.PhoneNumber = value
	case FieldPassword:
		f.Password = value
	case FieldConfirmPassword:
		f.ConfirmPassword = value
	}
	return f
}

// ValidationError reports the first rule a form broke.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
