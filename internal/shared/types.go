package shared

const (
	QueueDefault     = "default"
	QueueMedia       = "media"
	QueueMaintenance = "maintenance"

	TypeClearCache       = "cache:clear"
	TypeWarmCache        = "cache:warm"
	TypeProcessStarPhoto = "star:process_photo"
)

// ProcessPhotoPayload asks the worker to build photo variants for a star.
type ProcessPhotoPayload struct {
	StarID      string `json:"star_id"`
	OriginalKey string `json:"original_key"`
}
