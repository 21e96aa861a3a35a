package pipeline

import (
	"strings"

	"snipelabel/internal/services"
	"snipelabel/internal/snipeit"
)

// LabelRequest is the resolved set of inputs for one run. The CLI (or any
// other front end) owns prompting and defaulting; by the time a request
// reaches the pipeline every field is final.
type LabelRequest struct {
	ItemType     snipeit.ItemType
	ItemID       string
	TemplatePath string
	OutputPath   string
}

// Validate rejects incomplete requests before any work starts.
func (r *LabelRequest) Validate() error {
	if _, err := snipeit.ParseItemType(string(r.ItemType)); err != nil {
		return services.Wrap(services.ErrValidation, "request", "item type", err.Error(), nil)
	}
	if strings.TrimSpace(r.ItemID) == "" {
		return services.Wrap(services.ErrValidation, "request", "item id", "must not be empty", nil)
	}
	if strings.TrimSpace(r.TemplatePath) == "" {
		return services.Wrap(services.ErrValidation, "request", "template path", "must not be empty", nil)
	}
	if strings.TrimSpace(r.OutputPath) == "" {
		return services.Wrap(services.ErrValidation, "request", "output path", "must not be empty", nil)
	}
	return nil
}
