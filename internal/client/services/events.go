package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/campusevents/internal/client/client"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

var (
	// ErrNotRegistered is returned when the user holds no registration for
	// the event.
	ErrNotRegistered = errors.New("you are not registered for this event")
	ErrEmptyFeedback = errors.New("feedback comment is empty")
)

// EventService covers events, registrations, attendance, gallery, feedback
// and reports.
type EventService interface {
	List(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, in models.EventInput) (*models.Event, error)
	Update(ctx context.Context, id int64, in models.EventInput) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context, id int64) (*models.EventStatistics, error)

	RegisterFor(ctx context.Context, eventID, userID int64) (*models.Registration, error)
	CancelRegistration(ctx context.Context, registrationID int64) error
	Registrations(ctx context.Context) (*models.Page[models.Registration], error)
	// RegistrationFor finds the registration of userID for eventID.
	RegistrationFor(ctx context.Context, eventID, userID int64) (*models.Registration, error)
	MarkAttendance(ctx context.Context, registrationID int64) (*models.Registration, error)

	Gallery(ctx context.Context, eventID int64) ([]models.GalleryImage, error)
	UploadGalleryImage(ctx context.Context, eventID int64, fileName string, content []byte, caption string) (*models.GalleryImage, error)

	Feedback(ctx context.Context, eventID int64) ([]models.Feedback, error)
	SubmitFeedback(ctx context.Context, eventID, userID int64, comment string) (*models.Feedback, error)

	// Report returns the raw report document of an event.
	Report(ctx context.Context, eventID int64) ([]byte, error)
}

type eventService struct {
	api API
}

func NewEventService(api API) EventService {
	return &eventService{api: api}
}

func eventPath(id int64) string {
	return fmt.Sprintf("/events/events/%d/", id)
}

func filterQuery(f models.EventFilter) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.EventType != "" {
		q.Set("event_type", string(f.EventType))
	}
	if f.Upcoming {
		q.Set("upcoming", "true")
	}
	if f.CreatedByMe {
		q.Set("created_by_me", "true")
	}
	if f.Registered {
		q.Set("registered", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return q
}

func (s *eventService) List(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error) {
	return getJSON[models.Page[models.Event]](ctx, s.api, "/events/events/", filterQuery(f))
}

func (s *eventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	return getJSON[models.Event](ctx, s.api, eventPath(id), nil)
}

func (s *eventService) Create(ctx context.Context, in models.EventInput) (*models.Event, error) {
	return sendJSON[models.Event](ctx, s.api, http.MethodPost, "/events/events/", in)
}

func (s *eventService) Update(ctx context.Context, id int64, in models.EventInput) (*models.Event, error) {
	return sendJSON[models.Event](ctx, s.api, http.MethodPatch, eventPath(id), in)
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	return s.api.JSON(ctx, http.MethodDelete, eventPath(id), nil, nil)
}

func (s *eventService) Statistics(ctx context.Context, id int64) (*models.EventStatistics, error) {
	return getJSON[models.EventStatistics](ctx, s.api, eventPath(id)+"statistics/", nil)
}

func (s *eventService) RegisterFor(ctx context.Context, eventID, userID int64) (*models.Registration, error) {
	body := map[string]int64{"event": eventID, "user": userID}
	return sendJSON[models.Registration](ctx, s.api, http.MethodPost, "/events/registrations/", body)
}

func (s *eventService) CancelRegistration(ctx context.Context, registrationID int64) error {
	return s.api.JSON(ctx, http.MethodDelete, fmt.Sprintf("/events/registrations/%d/", registrationID), nil, nil)
}

func (s *eventService) Registrations(ctx context.Context) (*models.Page[models.Registration], error) {
	return getJSON[models.Page[models.Registration]](ctx, s.api, "/events/registrations/", nil)
}

func (s *eventService) MarkAttendance(ctx context.Context, registrationID int64) (*models.Registration, error) {
	path := fmt.Sprintf("/events/registrations/%d/mark_attendance/", registrationID)
	return sendJSON[models.Registration](ctx, s.api, http.MethodPost, path, nil)
}

func (s *eventService) Gallery(ctx context.Context, eventID int64) ([]models.GalleryImage, error) {
	q := url.Values{"event_id": {strconv.FormatInt(eventID, 10)}}
	out, err := getJSON[[]models.GalleryImage](ctx, s.api, "/events/gallery/event_gallery/", q)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *eventService) UploadGalleryImage(ctx context.Context, eventID int64, fileName string, content []byte, caption string) (*models.GalleryImage, error) {
	fields := map[string]string{"event": strconv.FormatInt(eventID, 10)}
	if caption != "" {
		fields["caption"] = caption
	}

	resp, err := s.api.Do(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   "/events/gallery/",
		Multipart: &client.Multipart{
			Fields: fields,
			Files:  []client.FilePart{{Field: "image", FileName: fileName, Content: content}},
		},
	})
	if err != nil {
		return nil, err
	}

	var img models.GalleryImage
	if err := resp.Decode(&img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *eventService) Feedback(ctx context.Context, eventID int64) ([]models.Feedback, error) {
	q := url.Values{"event_id": {strconv.FormatInt(eventID, 10)}}
	out, err := getJSON[[]models.Feedback](ctx, s.api, "/events/feedback/event_feedback/", q)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *eventService) RegistrationFor(ctx context.Context, eventID, userID int64) (*models.Registration, error) {
	regs, err := s.Registrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}

	for _, r := range regs.Results {
		if r.Event == eventID && r.User == userID {
			return &r, nil
		}
	}
	return nil, ErrNotRegistered
}

// SubmitFeedback posts a comment for an event. The user must hold a
// registration for it.
func (s *eventService) SubmitFeedback(ctx context.Context, eventID, userID int64, comment string) (*models.Feedback, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrEmptyFeedback
	}

	if _, err := s.RegistrationFor(ctx, eventID, userID); err != nil {
		return nil, err
	}

	body := models.Feedback{Event: eventID, User: userID, Comment: comment}
	return sendJSON[models.Feedback](ctx, s.api, http.MethodPost, "/events/feedback/", body)
}

func (s *eventService) Report(ctx context.Context, eventID int64) ([]byte, error) {
	resp, err := s.api.Do(ctx, &client.Request{Method: http.MethodGet, Path: eventPath(eventID) + "report/"})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
