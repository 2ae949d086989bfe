package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophfood/internal/client/credentials"
	"github.com/dmitrijs2005/gophfood/internal/client/forms"
	"github.com/dmitrijs2005/gophfood/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readSecret prompts for a password and returns it as a string, wiping the
// raw bytes.
func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// reportFailure prints a submit failure the way the UI shows alerts:
// validation problems under "Validation Error", everything else under title.
func (a *App) reportFailure(title string, err error) {
	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintf(a.out, "Validation Error: %s\n", ve.Message)
		return
	}
	fmt.Fprintf(a.out, "%s: %s\n", title, err.Error())
}

// Register prompts for the registration fields and submits them through the
// form adapter. Admin surfaces also ask for a password confirmation.
func (a *App) Register(ctx context.Context) error {
	var f forms.RegisterForm
	var err error

	if f.FullName, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if f.PhoneNumber, err = getSimpleText(a.reader, "Enter phone number", a.out); err != nil {
		return err
	}
	if f.Password, err = a.readSecret("Enter password: "); err != nil {
		return err
	}
	if a.forms.Policy().AsksConfirmation() {
		if f.ConfirmPassword, err = a.readSecret("Confirm password: "); err != nil {
			return err
		}
	}

	a.forms.SetRegisterForm(f)
	if err := a.forms.SubmitRegister(ctx); err != nil {
		a.reportFailure("Registration Error", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", a.displayName())
	return nil
}

// Login prompts for credentials and signs in through the form adapter.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Enter password: ")
	if err != nil {
		return err
	}

	a.forms.SetLoginForm(forms.LoginForm{Email: email, Password: password})
	if err := a.forms.SubmitLogin(ctx); err != nil {
		a.reportFailure("Login Error", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", a.displayName())
	return nil
}

// Logout signs out. Local credentials are cleared even if the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Refresh renews the token pair. A failed refresh signs the user out.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.session.RefreshToken(ctx); err != nil {
		fmt.Fprintf(a.out, "Session expired, please log in again (%s)\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Token refreshed")
	return nil
}

// Status prints the session state and, when signed in, the access token's
// subject and expiry.
func (a *App) Status(ctx context.Context) error {
	st := a.session.State()
	if !st.IsAuthenticated {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}

	if st.User != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", st.User.Email)
		if st.User.FullName != "" {
			fmt.Fprintf(a.out, "Name: %s\n", st.User.FullName)
		}
		if st.User.PhoneNumber != "" {
			fmt.Fprintf(a.out, "Phone: %s\n", st.User.PhoneNumber)
		}
	} else {
		fmt.Fprintln(a.out, "Signed in")
	}

	info, err := a.authService.TokenInfo(ctx)
	switch {
	case errors.Is(err, credentials.ErrNoCredentials):
		fmt.Fprintln(a.out, "No access token stored")
	case err != nil:
		// Opaque tokens are fine; there is just nothing to show.
		a.logger.Debug(ctx, "access token claims unavailable", "error", err)
	default:
		if info.Subject != "" {
			fmt.Fprintf(a.out, "Token subject: %s\n", info.Subject)
		}
		if !info.ExpiresAt.IsZero() {
			state := "valid"
			if info.Expired(time.Now()) {
				state = "expired"
			}
			fmt.Fprintf(a.out, "Token expires: %s (%s)\n", info.ExpiresAt.Format(time.RFC3339), state)
		}
	}
	return nil
}

func (a *App) displayName() string {
	st := a.session.State()
	if st.User == nil {
		return ""
	}
	if st.User.FullName != "" {
		return st.User.FullName
	}
	return st.User.Email
}
