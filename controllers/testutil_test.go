package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pereval/database"
	"pereval/models"
	"pereval/routes"
)

// setupRouter wires the full route table to a fresh in-memory database.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// One shared-cache memory DB per test, so gorm's pooled connections all
	// see the same schema.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	database.Use(db)

	r := gin.New()
	routes.Register(r)
	return r, db
}

func doJSON(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func submitPayload() map[string]any {
	return map[string]any{
		"beauty_title": "per. ",
		"title":        "Pass X",
		"other_titles": "Old Pass",
		"connect":      "joins two river valleys",
		"user": map[string]any{
			"email": "a@b.c",
			"fam":   "F",
			"name":  "N",
			"otc":   "O",
			"phone": "+1",
		},
		"coords": map[string]any{
			"latitude":  45.0,
			"longitude": 7.0,
			"height":    1500,
		},
		"level": map[string]any{
			"winter": "", "summer": "1A", "autumn": "1A", "spring": "",
		},
	}
}

// mustSubmit posts the payload and returns the new record id.
func mustSubmit(t *testing.T, r http.Handler, payload map[string]any) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/submitData/", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("submit: status %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	id, ok := body["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("submit: bad id in %v", body)
	}
	return uint(id)
}
