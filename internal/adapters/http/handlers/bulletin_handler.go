package handlers

import (
	"time"

	"metta-coop-api/internal/adapters/persistence/models"
	"metta-coop-api/internal/adapters/persistence/repositories"
	"metta-coop-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BulletinHandler handles notices and events. These are plain CRUD
// reads and admin writes, so it talks to the repositories directly.
type BulletinHandler struct {
	noticeRepo repositories.NoticeRepository
	eventRepo  repositories.EventRepository
}

// NewBulletinHandler creates a new bulletin handler
func NewBulletinHandler(noticeRepo repositories.NoticeRepository, eventRepo repositories.EventRepository) *BulletinHandler {
	return &BulletinHandler{
		noticeRepo: noticeRepo,
		eventRepo:  eventRepo,
	}
}

// NoticeRequest represents a notice creation body
type NoticeRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	IsUrgent bool   `json:"isUrgent"`
}

// EventRequest represents an event creation body
type EventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Type        string `json:"type"`
}

// ListNotices returns all notices
// @Summary List notices
// @Description List notices, newest first
// @Tags Bulletin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notices [get]
func (h *BulletinHandler) ListNotices(c *fiber.Ctx) error {
	notices, err := h.noticeRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list notices")
	}

	return response.Success(c, "Notices retrieved successfully", notices)
}

// CreateNotice creates a notice
// @Summary Create notice
// @Description Publish a notice to all members
// @Tags Bulletin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NoticeRequest true "Notice data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notices [post]
func (h *BulletinHandler) CreateNotice(c *fiber.Ctx) error {
	var req NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return response.BadRequest(c, "Title and content are required")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
	}

	notice := &models.Notice{
		Title:    req.Title,
		Content:  req.Content,
		Date:     date,
		IsUrgent: req.IsUrgent,
	}
	if err := h.noticeRepo.Create(c.Context(), notice); err != nil {
		return response.InternalServerError(c, "Failed to create notice")
	}

	return response.Created(c, "Notice created successfully", notice)
}

// ListEvents returns all events
// @Summary List events
// @Description List events and meetings in date order
// @Tags Bulletin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /events [get]
func (h *BulletinHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.eventRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}

	return response.Success(c, "Events retrieved successfully", events)
}

// CreateEvent creates an event
// @Summary Create event
// @Description Schedule an event or meeting
// @Tags Bulletin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /events [post]
func (h *BulletinHandler) CreateEvent(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
	}

	eventType := req.Type
	if eventType == "" {
		eventType = models.EventTypeMeeting
	}
	if eventType != models.EventTypeMeeting && eventType != models.EventTypeEvent {
		return response.BadRequest(c, "Type must be 'meeting' or 'event'")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Venue:       req.Venue,
		Type:        eventType,
	}
	if err := h.eventRepo.Create(c.Context(), event); err != nil {
		return response.InternalServerError(c, "Failed to create event")
	}

	return response.Created(c, "Event created successfully", event)
}

// parseDate parses a YYYY-MM-DD date, defaulting to today when empty
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}
