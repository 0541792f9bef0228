package models

import "time"

// SubmitResponse is the envelope for POST /submitData/.
type SubmitResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	ID      *uint  `json:"id"`
}

// EditResponse is the envelope for PATCH endpoints. Note the `state` key:
// edit responses use a different envelope shape than submit and reads, and
// that inconsistency is kept for client compatibility.
type EditResponse struct {
	State   int    `json:"state"`
	Message string `json:"message"`
}

// LookupError is the failure envelope for read endpoints; status is always 0.
type LookupError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// PerevalView is the full nested representation returned by read endpoints.
type PerevalView struct {
	ID            uint     `json:"id"`
	BeautyTitle   string   `json:"beauty_title"`
	Title         string   `json:"title"`
	OtherTitles   string   `json:"other_titles"`
	Connect       string   `json:"connect"`
	AddTime       string   `json:"add_time"`
	User          Reporter `json:"user"`
	Coords        Coords   `json:"coords"`
	Level         Level    `json:"level"`
	Images        []Image  `json:"images"`
	Status        string   `json:"status"`
	StatusDisplay string   `json:"status_display"`
}

// NewPerevalView builds the read representation from a loaded record.
// Associations must already be preloaded.
func NewPerevalView(p *Pereval) PerevalView {
	images := p.Images
	if images == nil {
		images = []Image{}
	}
	return PerevalView{
		ID:            p.ID,
		BeautyTitle:   p.BeautyTitle,
		Title:         p.Title,
		OtherTitles:   p.OtherTitles,
		Connect:       p.Connect,
		AddTime:       p.AddTime.UTC().Format(time.RFC3339),
		User:          p.User,
		Coords:        p.Coords,
		Level:         p.Level,
		Images:        images,
		Status:        p.Status,
		StatusDisplay: StatusDisplay[p.Status],
	}
}
