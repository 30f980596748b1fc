package server

import (
	"lifelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RecordMood handles POST /api/moods
func (s *Server) RecordMood(c *fiber.Ctx) error {
	var req struct {
		MoodType models.MoodType `json:"mood_type"`
		Note     string          `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	mood, err := s.moodService.RecordMood(c.Context(), currentUserID(c), req.MoodType, req.Note)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mood)
}

// GetTodayMood handles GET /api/moods/today. The client passes its UTC offset
// in minutes so "today" follows the user's local calendar.
func (s *Server) GetTodayMood(c *fiber.Ctx) error {
	tzOffset := queryInt(c, "tz_offset", 0)
	if tzOffset < -14*60 || tzOffset > 14*60 {
		return models.RespondError(c,
			models.NewValidationError("tz_offset out of range"))
	}

	mood, err := s.moodService.TodayMood(c.Context(), currentUserID(c), tzOffset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"mood": mood})
}

// GetMoodHistory handles GET /api/moods/history
func (s *Server) GetMoodHistory(c *fiber.Ctx) error {
	moods, err := s.moodService.MoodHistory(c.Context(), currentUserID(c),
		queryInt(c, "limit", 30), queryInt(c, "offset", 0))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"moods": moods})
}
