package usecases

import (
	"time"

	"allaccess/internal/domain/pass"
)

// PassDTO is the collaborator-facing projection of one grant.
type PassDTO struct {
	ID             string     `json:"id"`
	OrderID        uint       `json:"order_id"`
	ProductID      uint       `json:"product_id"`
	PriceID        uint       `json:"price_id"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"status_label"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	ExpirationTime *time.Time `json:"expiration_time,omitempty"`
	NeverExpires   bool       `json:"never_expires"`
	DownloadsUsed  int        `json:"downloads_used"`
	DownloadLimit  string     `json:"download_limit"`
	Duration       string     `json:"duration"`
}

func toPassDTO(p *pass.Pass) *PassDTO {
	dto := &PassDTO{
		ID:            p.ID().String(),
		OrderID:       p.ID().OrderID,
		ProductID:     p.ID().ProductID,
		PriceID:       p.ID().PriceID,
		Status:        p.Status().String(),
		StatusLabel:   pass.StatusLabel(p.Status()),
		DownloadsUsed: p.DownloadsUsed(),
		DownloadLimit: pass.DownloadLimitString(p),
		Duration:      pass.DurationString(p),
	}

	if entry := p.Entry(); entry != nil {
		start := p.StartTime()
		dto.StartTime = &start
		if at, ok := p.Expiration().Time(); ok {
			dto.ExpirationTime = &at
		} else {
			dto.NeverExpires = true
		}
	}
	return dto
}
