package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pereval/database"
	"pereval/models"
)

// statusTransitions lists the moderation moves a submission may make.
var statusTransitions = map[string][]string{
	models.StatusNew:     {models.StatusPending, models.StatusRejected},
	models.StatusPending: {models.StatusAccepted, models.StatusRejected},
}

func transitionAllowed(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SetStatus handles PATCH /moderation/submissions/:id/status. It is the only
// writer of a record's status; the public edit path never touches it.
func SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.EditResponse{State: 0, Message: "record not found"})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, models.EditResponse{State: 0, Message: "invalid JSON body"})
		return
	}
	if _, known := models.StatusDisplay[body.Status]; !known {
		c.JSON(http.StatusBadRequest, models.EditResponse{State: 0, Message: "unknown status " + strconv.Quote(body.Status)})
		return
	}

	var record models.Pereval
	if err := database.DB().First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.EditResponse{State: 0, Message: "record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.EditResponse{State: 0, Message: err.Error()})
		return
	}

	if !transitionAllowed(record.Status, body.Status) {
		c.JSON(http.StatusBadRequest, models.EditResponse{
			State:   0,
			Message: "cannot move from " + record.Status + " to " + body.Status,
		})
		return
	}

	if err := database.DB().Model(&record).Update("status", body.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.EditResponse{State: 0, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.EditResponse{State: 1, Message: "status updated"})
}
