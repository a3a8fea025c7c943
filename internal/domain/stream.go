package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamListingCreated = "stream:listing:created"
	StreamImageOrphaned  = "stream:image:orphaned"
)

// ListingCreatedEvent - объявление успешно создано через форму
type ListingCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	ListingID  string    `json:"listing_id"`
	OwnerID    string    `json:"owner_id"`
	FormID     string    `json:"form_id"`
	Title      string    `json:"title"`
	ImageCount int       `json:"image_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Причины, по которым фото стало сиротой
const (
	OrphanReasonRemovedDuringUpload = "removed_during_upload"
	OrphanReasonRemoved             = "removed"
	OrphanReasonSessionDiscarded    = "session_discarded"
)

// ImageOrphanedEvent - фото загружено на хостинг, но в объявление не попадёт
type ImageOrphanedEvent struct {
	EventID  uuid.UUID `json:"event_id"`
	PublicID string    `json:"public_id"`
	URL      string    `json:"url,omitempty"`
	FormID   string    `json:"form_id,omitempty"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"at"`
}

// Valid - можно ли по событию удалить фото на хостинге
func (e *ImageOrphanedEvent) Valid() bool {
	return e.PublicID != ""
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
