package domain

import "time"

// ImageFile - бинарник, ожидающий загрузки на хостинг
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageItem - фото в пайплайне формы. Позиция в списке = порядок показа,
// позиция 0 - обложка.
type ImageItem struct {
	ID          string     `json:"id"`
	File        *ImageFile `json:"-"`
	FileName    string     `json:"fileName"`
	URL         string     `json:"url"`
	PublicID    string     `json:"publicId"`
	IsUploading bool       `json:"isUploading"`
}

// Ready - загружено ли фото на хостинг
func (i *ImageItem) Ready() bool {
	return !i.IsUploading && i.URL != ""
}

// ImageRef - проекция готового фото, которую видит черновик
type ImageRef struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	DisplayOrder int    `json:"displayOrder"`
	IsPrimary    bool   `json:"isPrimary"`
}

// UploadedImage - ответ хостинга изображений
type UploadedImage struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Коды уведомлений формы
const (
	NotificationUploadFailed = "UPLOAD_FAILED"
)

// Notification - сообщение пользователю формы (например, о неудачной загрузке)
type Notification struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	ImageID string    `json:"imageId,omitempty"`
	At      time.Time `json:"at"`
}
