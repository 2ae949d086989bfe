package forms

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	fullNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// Surface names a client surface with its own validation rules.
type Surface string

const (
	SurfaceMobile Surface = "mobile"
	SurfaceAdmin  Surface = "admin"
)

type rule struct {
	field Field
	value string
	ok    func(string) bool
	msg   string
}

func firstFailure(rules []rule) error {
	for _, r := range rules {
		if !r.ok(r.value) {
			return &ValidationError{Field: r.field, Message: r.msg}
		}
	}
	return nil
}

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }
func notEmpty(s string) bool { return s != "" }

func minLen(n int) func(string) bool {
	return func(s string) bool { return utf8.RuneCountInString(s) >= n }
}

func matches(re *regexp.Regexp) func(string) bool {
	return re.MatchString
}

func equals(other string) func(string) bool {
	return func(s string) bool { return s == other }
}

func mixedCaseAndDigit(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// Policy is the set of validation rules of one surface. Rules run in order
// and the first failing one is reported.
type Policy struct {
	Surface  Surface
	login    func(LoginForm) []rule
	register func(RegisterForm) []rule
}

func (p Policy) ValidateLogin(f LoginForm) error {
	return firstFailure(p.login(f))
}

func (p Policy) ValidateRegister(f RegisterForm) error {
	return firstFailure(p.register(f))
}

// MobilePolicy is the customer app's rule set: 6-character passwords and no
// password confirmation.
var MobilePolicy = Policy{
	Surface: SurfaceMobile,
	login: func(f LoginForm) []rule {
		return []rule{
			{FieldEmail, f.Email, notBlank, "Email is required"},
			{FieldEmail, f.Email, matches(emailPattern), "Please enter a valid email address"},
			{FieldPassword, f.Password, notBlank, "Password is required"},
			{FieldPassword, f.Password, minLen(6), "Password must be at least 6 characters long"},
		}
	},
	register: func(f RegisterForm) []rule {
		return []rule{
			{FieldFullName, f.FullName, notBlank, "Full name is required"},
			{FieldEmail, f.Email, notBlank, "Email is required"},
			{FieldEmail, f.Email, matches(emailPattern), "Please enter a valid email address"},
			{FieldPassword, f.Password, notBlank, "Password is required"},
			{FieldPassword, f.Password, minLen(6), "Password must be at least 6 characters long"},
			{FieldPhoneNumber, f.PhoneNumber, notBlank, "Phone number is required"},
			{FieldPhoneNumber, f.PhoneNumber, matches(phonePattern), "Please enter a valid phone number"},
		}
	},
}

// AdminPolicy is the admin dashboard's rule set: stronger sign-up passwords,
// a letters-only name and a confirmation field.
var AdminPolicy = Policy{
	Surface: SurfaceAdmin,
	login: func(f LoginForm) []rule {
		return []rule{
			{FieldEmail, f.Email, notEmpty, "Email is required"},
			{FieldEmail, f.Email, matches(emailPattern), "Please enter a valid email address"},
			{FieldPassword, f.Password, notEmpty, "Password is required"},
			{FieldPassword, f.Password, minLen(6), "Password must be at least 6 characters"},
		}
	},
	register: func(f RegisterForm) []rule {
		return []rule{
			{FieldFullName, f.FullName, notEmpty, "Full name is required"},
			{FieldFullName, f.FullName, minLen(2), "Full name must be at least 2 characters"},
			{FieldFullName, f.FullName, matches(fullNamePattern), "Full name should only contain letters and spaces"},
			{FieldEmail, f.Email, notEmpty, "Email is required"},
			{FieldEmail, f.Email, matches(emailPattern), "Please enter a valid email address"},
			{FieldPhoneNumber, f.PhoneNumber, notEmpty, "Phone number is required"},
			{FieldPhoneNumber, f.PhoneNumber, matches(phonePattern), "Please enter a valid phone number"},
			{FieldPassword, f.Password, notEmpty, "Password is required"},
			{FieldPassword, f.Password, minLen(8), "Password must be at least 8 characters"},
			{FieldPassword, f.Password, mixedCaseAndDigit,
				"Password must contain at least one uppercase letter, one lowercase letter, and one number"},
			{FieldConfirmPassword, f.ConfirmPassword, notEmpty, "Please confirm your password"},
			{FieldConfirmPassword, f.ConfirmPassword, equals(f.Password), "Passwords don't match"},
		}
	},
}

// PolicyFor returns the policy of the named surface.
func PolicyFor(s Surface) (Policy, error) {
	switch s {
	case SurfaceMobile:
		return MobilePolicy, nil
	case SurfaceAdmin:
		return AdminPolicy, nil
	default:
		return Policy{}, fmt.Errorf("unknown surface %q", s)
	}
}

// AsksConfirmation reports whether the register form needs ConfirmPassword.
func (p Policy) AsksConfirmation() bool {
	return p.Surface == SurfaceAdmin
}
