package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pereval/database"
	"pereval/models"
)

// EditData handles PATCH /submitData/:id/.
//
// A record may only be edited while it is still in "new" status, and the
// reporter can never be changed through this path. The gate checks run in
// order and the first failure wins; the patch itself is applied atomically.
func EditData(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.EditResponse{State: 0, Message: "record not found"})
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

	if record.Status != models.StatusNew {
		c.JSON(http.StatusBadRequest, models.EditResponse{State: 0, Message: "record is not in new status"})
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.EditResponse{State: 0, Message: "invalid JSON body"})
		return
	}
	if _, ok := patch["user"]; ok {
		c.JSON(http.StatusBadRequest, models.EditResponse{State: 0, Message: "reporter is immutable via edit"})
		return
	}

	err = database.DB().Transaction(func(tx *gorm.DB) error {
		return applyPatch(tx, &record, patch)
	})
	if err != nil {
		var bad errBadPayload
		if errors.As(err, &bad) {
			c.JSON(http.StatusBadRequest, models.EditResponse{State: 0, Message: bad.msg})
			return
		}
		c.JSON(http.StatusInternalServerError, models.EditResponse{State: 0, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.EditResponse{State: 1, Message: "updated"})
}

// applyPatch merges the patch into the record and its owned rows. Coords and
// level merges are partial: only supplied sub-fields change. A supplied
// images key, even an empty list, replaces every attached image. Status and
// reporter are never touched here.
func applyPatch(tx *gorm.DB, record *models.Pereval, patch map[string]any) error {
	if raw, ok := patch["coords"]; ok {
		updates, err := coordsUpdates(asMap(raw))
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Coords{}).Where("id = ?", record.CoordsID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
	}

	if raw, ok := patch["level"]; ok {
		updates, err := levelUpdates(asMap(raw))
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Level{}).Where("id = ?", record.LevelID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
	}

	if raw, ok := patch["images"]; ok {
		entries, isList := raw.([]any)
		if !isList {
			return errBadPayload{"images is not an array"}
		}
		if err := tx.Where("pereval_id = ?", record.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		for i, entry := range entries {
			imgData := asMap(entry)
			if imgData == nil {
				return errBadPayload{fmt.Sprintf("images[%d] is not an object", i)}
			}
			img := models.Image{
				PerevalID: record.ID,
				Data:      asString(imgData["data"]),
				Title:     asString(imgData["title"]),
			}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
	}

	scalars := map[string]any{}
	for _, field := range []string{"beauty_title", "title", "other_titles", "connect"} {
		if v, ok := patch[field]; ok {
			scalars[field] = asString(v)
		}
	}
	if len(scalars) > 0 {
		if err := tx.Model(record).Updates(scalars).Error; err != nil {
			return err
		}
	}

	return nil
}

// coordsUpdates validates the supplied coordinate sub-fields and returns the
// column updates. Out-of-range values fail the whole edit before anything is
// written.
func coordsUpdates(coordsData map[string]any) (map[string]any, error) {
	updates := map[string]any{}
	if v, ok := coordsData["latitude"]; ok {
		lat, numOK := toFloat(v)
		if !numOK {
			return nil, errBadPayload{"coords.latitude is not a number"}
		}
		if lat < -90 || lat > 90 {
			return nil, errBadPayload{fmt.Sprintf("latitude %v out of range [-90, 90]", lat)}
		}
		updates["latitude"] = lat
	}
	if v, ok := coordsData["longitude"]; ok {
		lon, numOK := toFloat(v)
		if !numOK {
			return nil, errBadPayload{"coords.longitude is not a number"}
		}
		if lon < -180 || lon > 180 {
			return nil, errBadPayload{fmt.Sprintf("longitude %v out of range [-180, 180]", lon)}
		}
		updates["longitude"] = lon
	}
	if v, ok := coordsData["height"]; ok {
		h, numOK := toInt(v)
		if !numOK {
			return nil, errBadPayload{"coords.height is not a number"}
		}
		updates["height"] = h
	}
	return updates, nil
}

func levelUpdates(levelData map[string]any) (map[string]any, error) {
	updates := map[string]any{}
	for _, season := range []string{"winter", "summer", "autumn", "spring"} {
		if v, ok := levelData[season]; ok {
			grade := asString(v)
			if !models.ValidGrade(grade) {
				return nil, errBadPayload{fmt.Sprintf("invalid %s grade %q", season, grade)}
			}
			updates[season] = grade
		}
	}
	return updates, nil
}
