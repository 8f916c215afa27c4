package cli

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/filex"
)

const (
	timeLayout = "2006-01-02 15:04"

	reportsDir    = "reports"
	maxUploadSize = 10 << 20
)

// Events lists events. The first argument may select a view (upcoming, mine
// or registered); the remaining words are a search query.
func (a *App) Events(ctx context.Context, args []string) error {
	var f models.EventFilter
	if len(args) > 0 {
		switch args[0] {
		case "upcoming":
			f.Upcoming, args = true, args[1:]
		case "mine":
			f.CreatedByMe, args = true, args[1:]
		case "registered":
			f.Registered, args = true, args[1:]
		}
	}
	if (f.CreatedByMe || f.Registered) && !a.isLoggedIn() {
		return errLoginRequired
	}
	f.Search = strings.Join(args, " ")

	page, err := a.events.List(ctx, f)
	if err != nil {
		return err
	}

	if len(page.Results) == 0 {
		a.println("No events found.")
		return nil
	}
	for _, e := range page.Results {
		a.printf("%5d  %s  %-10s  %s\n", e.ID, e.StartDate.Local().Format(timeLayout), e.EventType, e.Title)
	}
	if page.Count > len(page.Results) {
		a.printf("(%d of %d shown)\n", len(page.Results), page.Count)
	}
	return nil
}

func (a *App) Event(ctx context.Context, id int64) error {
	e, err := a.events.Get(ctx, id)
	if err != nil {
		return err
	}

	a.printf("%s (#%d)\n", e.Title, e.ID)
	a.printf("  type:     %s\n", e.EventType)
	a.printf("  when:     %s - %s\n", e.StartDate.Local().Format(timeLayout), e.EndDate.Local().Format(timeLayout))
	if e.Location != "" {
		a.printf("  where:    %s\n", e.Location)
	}
	if e.Capacity > 0 {
		a.printf("  seats:    %d/%d\n", e.RegisteredCount, e.Capacity)
	}
	if e.IsRegistered {
		a.println("  you are registered")
	}
	if e.Description != "" {
		a.println()
		a.println(e.Description)
	}
	return nil
}

// Join registers the current user for an event.
func (a *App) Join(ctx context.Context, eventID int64) error {
	if err := a.authorize(""); err != nil {
		return err
	}

	reg, err := a.events.RegisterFor(ctx, eventID, a.session.Profile().ID)
	if err != nil {
		return err
	}
	a.printf("Registered for event %d (registration %d).\n", eventID, reg.ID)
	return nil
}

// CheckIn marks the current user's own registration for an event as
// attended.
func (a *App) CheckIn(ctx context.Context, eventID int64) error {
	if err := a.authorize(""); err != nil {
		return err
	}

	reg, err := a.events.RegistrationFor(ctx, eventID, a.session.Profile().ID)
	if err != nil {
		return err
	}
	if reg.Attended {
		a.printf("Attendance for event %d is already marked.\n", eventID)
		return nil
	}

	if _, err := a.events.MarkAttendance(ctx, reg.ID); err != nil {
		return err
	}
	a.printf("Attendance marked for event %d (registration %d).\n", eventID, reg.ID)
	return nil
}

// Attendance prints the check-in link attendees of an event open to mark
// their attendance. Admins and the event creator only.
func (a *App) Attendance(ctx context.Context, eventID int64) error {
	e, err := a.authorizeManager(ctx, eventID)
	if err != nil {
		return err
	}

	link, err := attendanceLink(a.api.BaseURL(), eventID)
	if err != nil {
		return err
	}
	a.printf("Check-in for %s (#%d):\n", e.Title, e.ID)
	a.printf("  %s\n", link)
	a.printf("Attendees can also run: checkin %d\n", e.ID)
	return nil
}

// attendanceLink builds the check-in page URL on the origin of the API.
func attendanceLink(apiURL string, eventID int64) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	origin := url.URL{Scheme: u.Scheme, Host: u.Host, Path: fmt.Sprintf("/mark-attendance/%d", eventID)}
	return origin.String(), nil
}

// Feedback reads a multi-line comment and submits it for an event the user
// is registered for.
func (a *App) Feedback(ctx context.Context, eventID int64) error {
	if err := a.authorize(""); err != nil {
		return err
	}

	comment, err := GetMultiline(a.reader, "Enter your feedback", a.out)
	if err != nil {
		return err
	}

	if _, err := a.events.SubmitFeedback(ctx, eventID, a.session.Profile().ID, comment); err != nil {
		return err
	}
	a.println("Thank you for your feedback!")
	return nil
}

// Report downloads the report of an event into the reports directory.
// Admins and the event creator only.
func (a *App) Report(ctx context.Context, eventID int64) error {
	if _, err := a.authorizeManager(ctx, eventID); err != nil {
		return err
	}

	doc, err := a.events.Report(ctx, eventID)
	if err != nil {
		return err
	}

	path, err := filex.WriteInSubDir(reportsDir, fmt.Sprintf("event-%d-report.pdf", eventID), doc)
	if err != nil {
		return err
	}
	a.printf("Report saved to %s (%d bytes).\n", path, len(doc))
	return nil
}

// Upload adds an image from path to the gallery of an event. Admins and the
// event creator only.
func (a *App) Upload(ctx context.Context, eventID int64, path, caption string) error {
	if _, err := a.authorizeManager(ctx, eventID); err != nil {
		return err
	}

	content, err := filex.ReadLimited(path, maxUploadSize)
	if err != nil {
		return err
	}

	img, err := a.events.UploadGalleryImage(ctx, eventID, filepath.Base(path), content, caption)
	if err != nil {
		return err
	}
	a.printf("Uploaded %s to event %d (image %d).\n", filepath.Base(path), eventID, img.ID)
	return nil
}
