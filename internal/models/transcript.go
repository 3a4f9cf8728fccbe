package models

// Source labels where a transcript's content came from. Stored as a plain
// string column so legacy rows with unknown labels keep loading.
type Source string

const (
	SourceEarningsCall    Source = "earnings_call"
	SourceDueDiligence    Source = "due_diligence"
	SourceBoardMeeting    Source = "board_meeting"
	SourceInvestorCall    Source = "investor_call"
	SourceAnalystBriefing Source = "analyst_briefing"
	SourceInternalMeeting Source = "internal_meeting"
	SourceInterview       Source = "interview"
	SourceOther           Source = "other"
)

// KnownSources lists every valid source label, in display order.
var KnownSources = []Source{
	SourceEarningsCall,
	SourceDueDiligence,
	SourceBoardMeeting,
	SourceInvestorCall,
	SourceAnalystBriefing,
	SourceInternalMeeting,
	SourceInterview,
	SourceOther,
}

// IsKnownSource reports whether s is one of the fixed source labels.
func IsKnownSource(s Source) bool {
	for _, known := range KnownSources {
		if s == known {
			return true
		}
	}
	return false
}

// TranscriptModel is an ingested call/meeting transcript.
type TranscriptModel struct {
	Base
	Title        string         `json:"title"         gorm:"not null"`
	Content      string         `json:"content"       gorm:"type:longtext"`
	Source       Source         `json:"source"        gorm:"index;default:'other'"`
	Tags         StringArray    `json:"tags"          gorm:"type:json"`
	IsProcessed  bool           `json:"is_processed"  gorm:"default:false;index"`
	IsSummarized bool           `json:"is_summarized" gorm:"default:false"`
	FilePath     *string        `json:"file_path,omitempty"`
	Metadata     TranscriptMeta `json:"metadata"      gorm:"type:longtext"`
	UserID       string         `json:"user_id"       gorm:"index;not null"`
}

func (TranscriptModel) TableName() string { return "transcripts" }

// HasContent reports whether the transcript carries non-whitespace text.
func (t TranscriptModel) HasContent() bool {
	for _, r := range t.Content {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			return true
		}
	}
	return false
}
