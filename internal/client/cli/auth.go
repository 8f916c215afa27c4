package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for the account fields and creates the account. A
// successful registration logs the user in.
func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest
	var err error

	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if req.FirstName, err = getSimpleText(a.reader, "Enter first name", a.out); err != nil {
		return err
	}
	if req.LastName, err = getSimpleText(a.reader, "Enter last name", a.out); err != nil {
		return err
	}

	roleText, err := getSimpleText(a.reader, "Enter role (STUDENT/INSTRUCTOR) [STUDENT]", a.out)
	if err != nil {
		return err
	}
	req.Role = models.RoleStudent
	if roleText != "" {
		role, ok := models.ParseRole(roleText)
		if !ok {
			return fmt.Errorf("unknown role %q", roleText)
		}
		req.Role = role
	}

	facultyText, err := getSimpleText(a.reader, "Enter faculty id (optional)", a.out)
	if err != nil {
		return err
	}
	if facultyText != "" {
		id, err := strconv.ParseInt(facultyText, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid faculty id %q", facultyText)
		}
		req.Faculty = &id
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		return errPasswordMismatch
	}
	req.Password, req.Password2 = string(password), string(confirm)

	p, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", p.DisplayName())
	return nil
}

// Login prompts for email and password and logs in. A failed login keeps
// the current session and returns the displayable error.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", p.DisplayName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the profile held by the session.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.authorize(""); err != nil {
		return err
	}
	p := a.session.Profile()

	a.printf("%s <%s>\n", p.DisplayName(), p.Email)
	a.printf("  id:   %d\n", p.ID)
	a.printf("  role: %s\n", p.Role)
	if p.Faculty != nil {
		name := p.FacultyName
		if name == "" {
			name = "#" + strconv.FormatInt(*p.Faculty, 10)
		}
		a.printf("  faculty: %s\n", name)
	}
	return nil
}

// Status prints the session state, the access token expiry and the API
// client counters of this run.
func (a *App) Status(ctx context.Context) error {
	st := a.session.State()

	a.printf("API:           %s\n", a.api.BaseURL())
	a.printf("Language:      %s\n", a.language)
	a.printf("Authenticated: %t\n", st.Authenticated)
	if st.Profile != nil && st.Authenticated {
		a.printf("Role:          %s\n", st.Profile.Role)
	}
	if st.Error != "" {
		a.printf("Last error:    %s\n", st.Error)
	}
	if exp, ok := a.session.AccessExpiry(ctx); ok {
		left := time.Until(exp).Round(time.Second)
		if left > 0 {
			a.printf("Access token:  expires in %s\n", left)
		} else {
			a.printf("Access token:  expired %s ago (refreshed on next request)\n", -left)
		}
	}

	totals, err := a.metricTotals()
	if err != nil {
		return err
	}
	a.printf("Requests: %.0f, token refreshes: %.0f, sessions expired: %.0f\n",
		totals["campus_api_client_requests_total"],
		totals["campus_api_client_token_refreshes_total"],
		totals["campus_api_client_sessions_expired_total"])
	return nil
}

// EditProfile prompts for the editable profile fields, saves the changed
// ones on the server and updates the session profile.
func (a *App) EditProfile(ctx context.Context) error {
	if err := a.authorize(""); err != nil {
		return err
	}
	p := a.session.Profile()

	var upd models.ProfileUpdate
	changed := false
	for _, f := range []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"First name", p.FirstName, &upd.FirstName},
		{"Last name", p.LastName, &upd.LastName},
		{"Username", p.Username, &upd.Username},
	} {
		v, ok, err := GetOptional(a.reader, f.prompt, f.current, a.out)
		if err != nil {
			return err
		}
		if ok {
			v := strings.TrimSpace(v)
			*f.dst = &v
			changed = true
		}
	}

	if !changed {
		a.println("Nothing to update.")
		return nil
	}

	updated, err := a.users.UpdateProfile(ctx, p.ID, upd)
	if err != nil {
		return err
	}
	a.session.UpdateProfile(updated)
	a.println("Profile updated.")
	return nil
}

// Password changes the current user's password. The new password has to be
// entered twice.
func (a *App) Password(ctx context.Context) error {
	if err := a.authorize(""); err != nil {
		return err
	}

	current, err := getPassword("Enter current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPassword("Repeat new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(next) != string(confirm) {
		return errPasswordMismatch
	}

	change := models.PasswordChange{CurrentPassword: string(current), NewPassword: string(next)}
	if err := a.users.UpdatePassword(ctx, a.session.Profile().ID, change); err != nil {
		return err
	}
	a.println("Password updated.")
	return nil
}
