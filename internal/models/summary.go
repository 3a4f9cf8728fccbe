package models

// TranscriptSummaryModel caches generated transcript summaries.
type TranscriptSummaryModel struct {
	Base
	Hash         string `json:"hash"          gorm:"uniqueIndex;not null"` // hash(transcriptId + lang)
	Summary      string `json:"summary"       gorm:"type:text;not null"`
	TranscriptID string `json:"transcript_id" gorm:"index;not null"`
	Lang         string `json:"lang"          gorm:"default:'default'"`
}

func (TranscriptSummaryModel) TableName() string { return "transcript_summaries" }
