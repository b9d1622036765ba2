package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/event-registration/internal/api/dto"
	"github.com/spec-kit/event-registration/internal/domain"
	"github.com/spec-kit/event-registration/internal/service"
	"github.com/spec-kit/event-registration/internal/view"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// SessionCookie describes the cookie carrying the form session id.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// RegistrationHandler serves the registration form and its change, blur and
// submit events.
type RegistrationHandler struct {
	registrations *service.RegistrationService
	renderer      *view.Renderer
	cookie        SessionCookie
}

// NewRegistrationHandler constructs handler.
func NewRegistrationHandler(registrations *service.RegistrationService, renderer *view.Renderer, cookie SessionCookie) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, renderer: renderer, cookie: cookie}
}

// Show handles GET /register: the editing form, or the summary once submitted.
func (h *RegistrationHandler) Show(c *fiber.Ctx) error {
	sess, err := h.open(c)
	if err != nil {
		return err
	}
	return h.renderPage(c, http.StatusOK, view.Build(sess.State))
}

// UpdateFields handles POST /register/fields, the change event.
func (h *RegistrationHandler) UpdateFields(c *fiber.Ctx) error {
	updates, err := parseUpdates(c)
	if err != nil {
		return err
	}
	sess, err := h.edit(c, func(sess *service.Session) error {
		return h.registrations.ApplyFields(c.UserContext(), sess, updates)
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.FieldsResponse{
		Values:       sess.State.Values(),
		GuestVisible: sess.State.GuestVisible(),
	}})
}

// Check handles POST /register/check, the blur event. Posted fields are
// applied before the whole form is revalidated.
func (h *RegistrationHandler) Check(c *fiber.Ctx) error {
	updates, err := parseUpdates(c)
	if err != nil {
		return err
	}
	var errs domain.FormErrors
	sess, err := h.edit(c, func(sess *service.Session) (err error) {
		if err = h.registrations.ApplyFields(c.UserContext(), sess, updates); err != nil {
			return err
		}
		errs, err = h.registrations.Check(c.UserContext(), sess)
		return err
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.CheckResponse{
		Errors:       errs.Strings(),
		GuestVisible: sess.State.GuestVisible(),
	}})
}

// Submit handles POST /register. Browsers are redirected to the summary on
// success and get the form back with 422 otherwise; JSON clients get the
// outcome as data.
func (h *RegistrationHandler) Submit(c *fiber.Ctx) error {
	updates, err := parseUpdates(c)
	if err != nil {
		return err
	}
	var errs domain.FormErrors
	sess, err := h.edit(c, func(sess *service.Session) (err error) {
		if err = h.registrations.ApplyFields(c.UserContext(), sess, updates); err != nil {
			return err
		}
		errs, err = h.registrations.Submit(c.UserContext(), sess)
		return err
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if !errs.Empty() {
		status = http.StatusUnprocessableEntity
	}

	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"data": dto.SubmitResponse{
			Submitted: sess.State.Submitted(),
			Errors:    errs.Strings(),
			Values:    sess.State.Values(),
		}})
	}
	if errs.Empty() {
		return c.Redirect("/register", http.StatusSeeOther)
	}
	return h.renderPage(c, status, view.Build(sess.State))
}

func (h *RegistrationHandler) open(c *fiber.Ctx) (*service.Session, error) {
	sess, err := h.registrations.Open(c.UserContext(), h.sessionID(c))
	if err != nil {
		return nil, err
	}
	h.setCookie(c, sess.ID)
	return sess, nil
}

func (h *RegistrationHandler) edit(c *fiber.Ctx, fn func(*service.Session) error) (*service.Session, error) {
	sess, err := h.registrations.Edit(c.UserContext(), h.sessionID(c), fn)
	if err != nil {
		return nil, err
	}
	h.setCookie(c, sess.ID)
	return sess, nil
}

// sessionID copies the cookie value; fiber reuses the backing buffer once
// the handler returns and the id outlives it as a store key.
func (h *RegistrationHandler) sessionID(c *fiber.Ctx) string {
	return utils.CopyString(c.Cookies(h.cookie.Name))
}

func (h *RegistrationHandler) setCookie(c *fiber.Ctx, id string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *RegistrationHandler) renderPage(c *fiber.Ctx, status int, page view.Page) error {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page); err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, h.renderer.ContentType())
	return c.Status(status).Send(buf.Bytes())
}

// parseUpdates binds the posted fields, urlencoded or JSON, and returns
// them in form order. Unknown names are ignored; attendance values other
// than Yes/No are rejected.
func parseUpdates(c *fiber.Ctx) ([]service.FieldUpdate, error) {
	var req dto.RegistrationFieldsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return nil, apperrors.NewValidationError("invalid payload", nil)
		}
	}

	posted := req.Posted()
	updates := make([]service.FieldUpdate, 0, len(posted))
	for _, field := range domain.Fields {
		value := posted[field]
		if value == nil {
			continue
		}
		v := utils.CopyString(*value)
		if field == domain.FieldAttendingWithGuest && !domain.GuestAttendance(v).Valid() {
			return nil, apperrors.NewValidationError("attendingWithGuest must be Yes or No", map[string]any{"value": v})
		}
		updates = append(updates, service.FieldUpdate{Field: field, Value: v})
	}
	return updates, nil
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
