package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"pereval/models"
)

func TestGetUnknownID(t *testing.T) {
	r, _ := setupRouter(t)

	for _, path := range []string{"/submitData/9999/", "/submitData/abc/"} {
		w := doJSON(r, http.MethodGet, path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s: status = %d, want 404", path, w.Code)
			continue
		}
		body := decodeBody(t, w)
		if body["status"] != 0.0 || body["message"] != "not found" {
			t.Errorf("GET %s: envelope = %v", path, body)
		}
	}
}

func TestListMissingEmailParameter(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/submitData/", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != 0.0 || body["message"] != "missing email parameter" {
		t.Errorf("envelope = %v", body)
	}
}

func TestListUnknownReporter(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/submitData/?user__email=nobody@b.c", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != 0.0 || body["message"] != "reporter not found" {
		t.Errorf("envelope = %v", body)
	}
}

func TestListKnownReporterWithNoRecords(t *testing.T) {
	r, db := setupRouter(t)

	// A reporter that exists but has never had a submission survive: empty
	// list, not a 404.
	reporter := models.Reporter{Email: "quiet@b.c", Fam: "F", Name: "N", Phone: "+1"}
	if err := db.Create(&reporter).Error; err != nil {
		t.Fatal(err)
	}

	w := doJSON(r, http.MethodGet, "/submitData/?user__email=quiet@b.c", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var list []any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	if len(list) != 0 {
		t.Errorf("list = %v, want empty", list)
	}
}

func TestListNewestFirst(t *testing.T) {
	r, db := setupRouter(t)

	first := mustSubmit(t, r, submitPayload())
	second := submitPayload()
	second["title"] = "Pass Y"
	secondID := mustSubmit(t, r, second)

	// Force distinct timestamps; submissions in the same instant would make
	// the order assertion flaky.
	base := time.Now().UTC()
	db.Model(&models.Pereval{}).Where("id = ?", first).Update("add_time", base.Add(-time.Hour))
	db.Model(&models.Pereval{}).Where("id = ?", secondID).Update("add_time", base)

	w := doJSON(r, http.MethodGet, "/submitData/?user__email=a@b.c", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	if list[0]["title"] != "Pass Y" || list[1]["title"] != "Pass X" {
		t.Errorf("order = [%v, %v], want newest first", list[0]["title"], list[1]["title"])
	}
	if email := list[0]["user"].(map[string]any)["email"]; email != "a@b.c" {
		t.Errorf("user.email = %v", email)
	}
}

func TestGetIncludesNestedEntities(t *testing.T) {
	r, _ := setupRouter(t)

	payload := submitPayload()
	payload["images"] = []any{map[string]any{"data": "blob", "title": "summit"}}
	id := mustSubmit(t, r, payload)

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/submitData/%d/", id), nil)
	body := decodeBody(t, w)

	level := body["level"].(map[string]any)
	if level["summer"] != "1A" || level["winter"] != "" {
		t.Errorf("level = %v", level)
	}
	images := body["images"].([]any)
	if len(images) != 1 || images[0].(map[string]any)["title"] != "summit" {
		t.Errorf("images = %v", images)
	}
	if _, err := time.Parse(time.RFC3339, body["add_time"].(string)); err != nil {
		t.Errorf("add_time %v is not RFC3339: %v", body["add_time"], err)
	}
}
