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

// GetData handles GET /submitData/:id/.
func GetData(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.LookupError{Status: 0, Message: "not found"})
		return
	}

	var record models.Pereval
	err = database.DB().
		Preload("User").Preload("Coords").Preload("Level").Preload("Images").
		First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.LookupError{Status: 0, Message: "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.LookupError{Status: 0, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewPerevalView(&record))
}

// ListData handles GET /submitData/?user__email=<email>.
//
// An unknown reporter is a 404; a known reporter with no submissions is an
// empty 200 list. The two cases are deliberately distinct.
func ListData(c *gin.Context) {
	email, ok := c.GetQuery("user__email")
	if !ok || email == "" {
		c.JSON(http.StatusBadRequest, models.LookupError{Status: 0, Message: "missing email parameter"})
		return
	}

	var reporter models.Reporter
	err := database.DB().Where("email = ?", email).First(&reporter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.LookupError{Status: 0, Message: "reporter not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.LookupError{Status: 0, Message: err.Error()})
		return
	}

	var records []models.Pereval
	err = database.DB().
		Preload("User").Preload("Coords").Preload("Level").Preload("Images").
		Where("user_id = ?", reporter.ID).
		Order("add_time DESC").
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.LookupError{Status: 0, Message: err.Error()})
		return
	}

	views := make([]models.PerevalView, 0, len(records))
	for i := range records {
		views = append(views, models.NewPerevalView(&records[i]))
	}
	c.JSON(http.StatusOK, views)
}
