package mango

import "mango-sync/core/reconcile"

// response is the wire shape of the incoming lines endpoint.
// Pointers distinguish a missing field from a zero value.
type response struct {
	Result *int   `json:"result" validate:"required"`
	Lines  []line `json:"lines" validate:"required,dive"`
}

type line struct {
	ID         *int64  `json:"id" validate:"required"`
	Number     string  `json:"number" validate:"required"`
	Name       *string `json:"name"`
	Comment    *string `json:"comment"`
	Region     *string `json:"region" validate:"required"`
	SchemeID   *int64  `json:"scheme_id" validate:"required"`
	SchemeName *string `json:"scheme_name" validate:"required"`
}

func (r *response) snapshot() *reconcile.Snapshot {
	lines := make([]reconcile.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, reconcile.Line{
			RemoteID:   *l.ID,
			Number:     l.Number,
			Name:       l.Name,
			Comment:    l.Comment,
			Region:     *l.Region,
			SchemaID:   *l.SchemeID,
			SchemaName: *l.SchemeName,
		})
	}
	return &reconcile.Snapshot{
		ResultCode: *r.Result,
		Lines:      lines,
	}
}
