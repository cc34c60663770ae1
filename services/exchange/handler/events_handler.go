package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	model "token-exchange/internal/models"
	"token-exchange/utils"

	"github.com/gin-gonic/gin"
)

const defaultEventLimit = 100

// EventReader replays committed events by sequence number
type EventReader interface {
	Range(from uint64, limit int) ([]model.Event, error)
}

type EventsHandler struct {
	reader EventReader
}

func NewEventsHandler(reader EventReader) *EventsHandler {
	return &EventsHandler{reader: reader}
}

// ListEventsHandler handles GET /events?from=&limit=
func (h *EventsHandler) ListEventsHandler(c *gin.Context) {
	from, err := strconv.ParseUint(c.DefaultQuery("from", "1"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, fmt.Errorf("from: %w", err), "invalid query")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultEventLimit)))
	if err != nil || limit <= 0 {
		utils.JSONError(c, http.StatusBadRequest, errors.New("limit must be a positive integer"), "invalid query")
		return
	}

	events, err := h.reader.Range(from, limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err, "internal server error")
		utils.Error("ListEventsHandler: journal read failed", map[string]any{
			"from":  from,
			"limit": limit,
			"error": err.Error(),
		})
		return
	}

	utils.JSONList(c, http.StatusOK, events, len(events), "events retrieved successfully")
}
