package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pereval/database"
	"pereval/models"
)

// errBadPayload marks failures that are the client's fault and map to 400.
type errBadPayload struct{ msg string }

func (e errBadPayload) Error() string { return e.msg }

// SubmitData handles POST /submitData/.
func SubmitData(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.SubmitResponse{
			Status: 400, Message: "invalid JSON body", ID: nil,
		})
		return
	}

	if missing := validateSubmission(payload); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, models.SubmitResponse{
			Status:  400,
			Message: "missing required fields: " + strings.Join(missing, ", "),
			ID:      nil,
		})
		return
	}

	var created *models.Pereval
	err := database.DB().Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = resolveSubmission(tx, payload)
		return err
	})
	if err != nil {
		var bad errBadPayload
		if errors.As(err, &bad) {
			c.JSON(http.StatusBadRequest, models.SubmitResponse{
				Status: 400, Message: bad.msg, ID: nil,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.SubmitResponse{
			Status: 500, Message: err.Error(), ID: nil,
		})
		return
	}

	c.JSON(http.StatusOK, models.SubmitResponse{
		Status: 200, Message: "submitted", ID: &created.ID,
	})
}

// resolveSubmission builds every row of one submission inside the caller's
// transaction: the reporter is reused by email (its fields overwritten with
// the payload's values), coords and level are always fresh rows, the record
// starts in "new" status no matter what the payload says, and images are
// attached in payload order.
func resolveSubmission(tx *gorm.DB, payload map[string]any) (*models.Pereval, error) {
	reporter, err := resolveReporter(tx, asMap(payload["user"]))
	if err != nil {
		return nil, err
	}

	coords, err := buildCoords(asMap(payload["coords"]))
	if err != nil {
		return nil, err
	}
	if err := tx.Create(coords).Error; err != nil {
		return nil, err
	}

	levelData := asMap(payload["level"])
	level := models.Level{
		Winter: asString(levelData["winter"]),
		Summer: asString(levelData["summer"]),
		Autumn: asString(levelData["autumn"]),
		Spring: asString(levelData["spring"]),
	}
	if err := tx.Create(&level).Error; err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	pereval := models.Pereval{
		BeautyTitle: asString(payload["beauty_title"]),
		Title:       asString(payload["title"]),
		OtherTitles: asString(payload["other_titles"]),
		Connect:     asString(payload["connect"]),
		Status:      models.StatusNew,
		UserID:      reporter.ID,
		CoordsID:    coords.ID,
		LevelID:     level.ID,
		RawData:     datatypes.JSON(raw),
	}
	if err := tx.Omit("User", "Coords", "Level", "Images").Create(&pereval).Error; err != nil {
		return nil, err
	}

	if raw, ok := payload["images"]; ok {
		entries, isList := raw.([]any)
		if !isList {
			return nil, errBadPayload{"images is not an array"}
		}
		for i, entry := range entries {
			imgData := asMap(entry)
			if imgData == nil {
				return nil, errBadPayload{fmt.Sprintf("images[%d] is not an object", i)}
			}
			img := models.Image{
				PerevalID: pereval.ID,
				Data:      asString(imgData["data"]),
				Title:     asString(imgData["title"]),
			}
			if err := tx.Create(&img).Error; err != nil {
				return nil, err
			}
		}
	}

	return &pereval, nil
}

// resolveReporter finds the reporter by email or creates one. An existing
// reporter's fields are overwritten with the payload's values even when they
// are unchanged: last write wins.
func resolveReporter(tx *gorm.DB, userData map[string]any) (*models.Reporter, error) {
	email := asString(userData["email"])

	var reporter models.Reporter
	err := tx.Where("email = ?", email).First(&reporter).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		reporter = models.Reporter{
			Email: email,
			Fam:   asString(userData["fam"]),
			Name:  asString(userData["name"]),
			Otc:   asString(userData["otc"]),
			Phone: asString(userData["phone"]),
		}
		if err := tx.Create(&reporter).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		reporter.Fam = asString(userData["fam"])
		reporter.Name = asString(userData["name"])
		reporter.Otc = asString(userData["otc"])
		reporter.Phone = asString(userData["phone"])
		if err := tx.Save(&reporter).Error; err != nil {
			return nil, err
		}
	}
	return &reporter, nil
}

func buildCoords(coordsData map[string]any) (*models.Coords, error) {
	lat, ok := toFloat(coordsData["latitude"])
	if !ok {
		return nil, errBadPayload{"coords.latitude is not a number"}
	}
	lon, ok := toFloat(coordsData["longitude"])
	if !ok {
		return nil, errBadPayload{"coords.longitude is not a number"}
	}
	height, ok := toInt(coordsData["height"])
	if !ok {
		return nil, errBadPayload{"coords.height is not a number"}
	}
	return &models.Coords{Latitude: lat, Longitude: lon, Height: height}, nil
}
