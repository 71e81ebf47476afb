package dto

import (
	"comanda/shared/constant"
	"comanda/shared/model"
	"comanda/shared/timezone"
)

// Metadata renders the audit block. The modified pair is omitted while a record is untouched
// since creation.
type Metadata struct {
	CreatedAt  string  `json:"created_at"`
	CreatedBy  string  `json:"created_by"`
	ModifiedAt *string `json:"modified_at,omitempty"`
	ModifiedBy *string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	m.CreatedAt = timezone.Format(meta.CreatedAt, constant.DateFormat)
	m.CreatedBy = meta.CreatedBy
	m.ModifiedAt, m.ModifiedBy = nil, nil

	if meta.ModifiedAt.Equal(meta.CreatedAt) && meta.ModifiedBy == meta.CreatedBy {
		return
	}

	modifiedAt := timezone.Format(meta.ModifiedAt, constant.DateFormat)
	modifiedBy := meta.ModifiedBy
	m.ModifiedAt, m.ModifiedBy = &modifiedAt, &modifiedBy
}
