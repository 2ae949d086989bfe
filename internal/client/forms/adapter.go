package forms

import (
	"context"
	"sync"
)

// Session is what the adapter submits validated forms to.
type Session interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, fullName, email, phoneNumber, password string) error
}

// Adapter owns the login and register forms of one screen. Submit methods
// validate first; an invalid form never reaches the session.
type Adapter struct {
	session Session
	policy  Policy

	mu              sync.Mutex
	login           LoginForm
	register        RegisterForm
	loginLoading    bool
	registerLoading bool
}

func NewAdapter(session Session, policy Policy) *Adapter {
	return &Adapter{session: session, policy: policy}
}

func (a *Adapter) Policy() Policy {
	return a.policy
}

func (a *Adapter) LoginForm() LoginForm {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.login
}

func (a *Adapter) RegisterForm() RegisterForm {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.register
}

func (a *Adapter) SetLoginForm(f LoginForm) {
	a.mu.Lock()
	a.login = f
	a.mu.Unlock()
}

func (a *Adapter) SetRegisterForm(f RegisterForm) {
	a.mu.Lock()
	a.register = f
	a.mu.Unlock()
}

func (a *Adapter) UpdateLoginField(field Field, value string) {
	a.mu.Lock()
	a.login = a.login.With(field, value)
	a.mu.Unlock()
}

func (a *Adapter) UpdateRegisterField(field Field, value string) {
	a.mu.Lock()
	a.register = a.register.With(field, value)
	a.mu.Unlock()
}

func (a *Adapter) IsLoginLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loginLoading
}

func (a *Adapter) IsRegisterLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registerLoading
}

func (a *Adapter) ValidateLogin() error {
	return a.policy.ValidateLogin(a.LoginForm())
}

func (a *Adapter) ValidateRegister() error {
	return a.policy.ValidateRegister(a.RegisterForm())
}

// Reset clears both forms.
func (a *Adapter) Reset() {
	a.mu.Lock()
	a.login = LoginForm{}
	a.register = RegisterForm{}
	a.mu.Unlock()
}

// SubmitLogin validates the login form and signs in. On success both forms
// are reset. A *ValidationError means the session was not called.
func (a *Adapter) SubmitLogin(ctx context.Context) error {
	f := a.LoginForm()
	if err := a.policy.ValidateLogin(f); err != nil {
		return err
	}

	a.setLoginLoading(true)
	defer a.setLoginLoading(false)

	if err := a.session.Login(ctx, f.Email, f.Password); err != nil {
		return err
	}
	a.Reset()
	return nil
}

// SubmitRegister validates the register form and creates the account.
func (a *Adapter) SubmitRegister(ctx context.Context) error {
	f := a.RegisterForm()
	if err := a.policy.ValidateRegister(f); err != nil {
		return err
	}

	a.setRegisterLoading(true)
	defer a.setRegisterLoading(false)

	if err := a.session.Register(ctx, f.FullName, f.Email, f.PhoneNumber, f.Password); err != nil {
		return err
	}
	a.Reset()
	return nil
}

func (a *Adapter) setLoginLoading(v bool) {
	a.mu.Lock()
	a.loginLoading = v
	a.mu.Unlock()
}

func (a *Adapter) setRegisterLoading(v bool) {
	a.mu.Lock()
	a.registerLoading = v
	a.mu.Unlock()
}
