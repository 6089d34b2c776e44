package handler

import (
	"github.com/99minutos/journal-system/internal/core/ports"
)

func toJournalInput(req journalRequest) ports.JournalInput {
	return ports.JournalInput{
		Title:   req.Title,
		Content: req.Content,
	}
}

func toJournalResponse(d *ports.JournalDetail) journalResponse {
	return journalResponse{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toListJournalsResponse(r *ports.ListJournalsResult) listJournalsResponse {
	items := make([]journalResponse, 0, len(r.Items))
	for i := range r.Items {
		items = append(items, toJournalResponse(&r.Items[i]))
	}
	return listJournalsResponse{
		Data: items,
		Pagination: pagination{
			Total:      r.Total,
			Page:       r.Page,
			Size:       r.Size,
			TotalPages: r.TotalPages,
		},
	}
}
