package transcript

import "github.com/dws-labs/transcript-core/internal/models"

// createDTO is the request body for POST /transcripts.
type createDTO struct {
	Title    string                `json:"title" binding:"required"`
	Content  string                `json:"content"`
	Source   models.Source         `json:"source"`
	Tags     []string              `json:"tags"`
	FilePath *string               `json:"file_path"`
	Metadata models.TranscriptMeta `json:"metadata"`
}

// updateDTO is the request body for PATCH /transcripts/:id.
// Pointer fields distinguish "not sent" from zero values.
type updateDTO struct {
	Title    *string        `json:"title"`
	Content  *string        `json:"content"`
	Source   *models.Source `json:"source"`
	Tags     *[]string      `json:"tags"`
	FilePath *string        `json:"file_path"`
}

// suggestionsDTO is the response for GET /transcripts/:id/suggestions.
type suggestionsDTO struct {
	Tags       []suggestedTag `json:"tags"`
	Source     models.Source  `json:"source"`
	SourceOwn  models.Source  `json:"current_source"`
	TagsOnFile []string       `json:"current_tags"`
}

type suggestedTag struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}
