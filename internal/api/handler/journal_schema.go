package handler

import "time"

type journalRequest struct {
	Title   string `json:"title"   validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,max=5000"`
}

type listJournalsQuery struct {
	Page int `query:"page" validate:"gte=0,lte=100000"`
	Size int `query:"size" validate:"gte=0,lte=100"`
}

type journalResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

type listJournalsResponse struct {
	Data       []journalResponse `json:"data"`
	Pagination pagination        `json:"pagination"`
}
