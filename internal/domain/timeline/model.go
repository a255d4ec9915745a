package timeline

import (
	"fmt"
	"time"

	"github.com/casaflow/casaflow/internal/domain/activity"
	"github.com/casaflow/casaflow/internal/domain/contact"
)

// Kind tags which source stream a timeline item came from.
type Kind string

const (
	KindStatusChange   Kind = "status_change"
	KindLeadChange     Kind = "lead_change"
	KindPropertyChange Kind = "property_change"
	KindActivity       Kind = "activity"
	KindFileUpload     Kind = "file_upload"
)

// Item is the displayable projection of one underlying event. It is
// recomputed on every read and never persisted.
type Item struct {
	ID        string         `json:"id"`
	Type      Kind           `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// LeadChange is a lead pipeline stage change, written by the lead pipeline
// and read-only here.
type LeadChange struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	CreatedAt time.Time `json:"created_at"`
}

// PropertyChange is a linked property's status change, read-only here.
type PropertyChange struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	CreatedAt  time.Time `json:"created_at"`
}

func projectStatusChange(sc contact.StatusChange) Item {
	data := map[string]any{
		"old_status": string(sc.OldStatus),
		"new_status": string(sc.NewStatus),
	}
	if sc.ChangedBy != nil {
		data["changed_by"] = *sc.ChangedBy
	}
	return Item{
		ID:        sc.ID,
		Type:      KindStatusChange,
		Timestamp: sc.CreatedAt,
		Title:     fmt.Sprintf("Contact status changed to %s", sc.NewStatus),
		Subtitle:  sc.Reason,
		Data:      data,
	}
}

func projectLeadChange(lc LeadChange) Item {
	return Item{
		ID:        lc.ID,
		Type:      KindLeadChange,
		Timestamp: lc.CreatedAt,
		Title:     fmt.Sprintf("Lead status changed to %s", lc.NewStatus),
		Subtitle:  fmt.Sprintf("from %s", lc.OldStatus),
		Data: map[string]any{
			"old_status": lc.OldStatus,
			"new_status": lc.NewStatus,
		},
	}
}

func projectPropertyChange(pc PropertyChange) Item {
	return Item{
		ID:        pc.ID,
		Type:      KindPropertyChange,
		Timestamp: pc.CreatedAt,
		Title:     fmt.Sprintf("Property status changed to %s", pc.NewStatus),
		Subtitle:  fmt.Sprintf("from %s", pc.OldStatus),
		Data: map[string]any{
			"property_id": pc.PropertyID,
			"old_status":  pc.OldStatus,
			"new_status":  pc.NewStatus,
		},
	}
}

func projectActivity(a activity.Activity) Item {
	return Item{
		ID:        a.ID,
		Type:      KindActivity,
		Timestamp: a.CreatedAt,
		Title:     a.Description,
		Subtitle:  string(a.Type),
		Data: map[string]any{
			"activity_type": string(a.Type),
		},
	}
}

func projectFileUpload(f contact.File) Item {
	subtitle := f.Tag
	if subtitle == "" {
		subtitle = "document"
	}
	return Item{
		ID:        f.ID,
		Type:      KindFileUpload,
		Timestamp: f.CreatedAt,
		Title:     fmt.Sprintf("Uploaded %s", f.Name),
		Subtitle:  subtitle,
		Data: map[string]any{
			"name": f.Name,
			"tag":  f.Tag,
		},
	}
}
