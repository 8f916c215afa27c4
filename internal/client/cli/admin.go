package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/client/services"
)

// Notifications lists the user's notifications and offers to mark them read.
func (a *App) Notifications(ctx context.Context) error {
	if err := a.authorize(""); err != nil {
		return err
	}

	page, err := a.notifications.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(page.Results) == 0 {
		a.println("No notifications.")
		return nil
	}

	unread := 0
	for _, n := range page.Results {
		mark := " "
		if !n.IsRead {
			mark = "*"
			unread++
		}
		a.printf("%s %s  %s: %s\n", mark, n.CreatedAt.Local().Format(timeLayout), n.Title, n.Message)
	}
	if unread == 0 {
		return nil
	}

	answer, err := getSimpleText(a.reader, "Mark all as read? (y/N)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}
	if err := a.notifications.MarkAllRead(ctx); err != nil {
		return err
	}
	a.println("All notifications marked as read.")
	return nil
}

// Users lists user accounts. Admins only.
func (a *App) Users(ctx context.Context) error {
	if err := a.authorize(models.RoleAdmin); err != nil {
		return err
	}

	page, err := a.users.List(ctx, nil)
	if err != nil {
		return err
	}
	for _, u := range page.Results {
		a.printf("%5d  %-10s  %-30s  %s\n", u.ID, u.Role, u.Email, u.DisplayName())
	}
	a.printf("%d user(s)\n", page.Count)
	return nil
}

// Faculties lists faculties. Admins only.
func (a *App) Faculties(ctx context.Context) error {
	if err := a.authorize(models.RoleAdmin); err != nil {
		return err
	}

	list, err := a.faculties.List(ctx)
	if err != nil {
		return err
	}
	for _, f := range list {
		a.printf("%5d  %s\n", f.ID, f.Name)
	}
	return nil
}

// Lang prints the current language without code, otherwise stores code as
// the preferred language.
func (a *App) Lang(ctx context.Context, code string) error {
	if code == "" {
		a.printf("Language: %s (supported: %s)\n", a.language, strings.Join(services.SupportedLanguages, ", "))
		return nil
	}

	lang, err := a.prefs.SetLanguage(ctx, code)
	if err != nil {
		return err
	}
	a.language = lang
	a.printf("Language set to %s.\n", lang)
	return nil
}
