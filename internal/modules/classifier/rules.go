package classifier

import "github.com/dws-labs/transcript-core/internal/models"

// tagRule maps a content keyword to a suggested tag. Rules are evaluated in
// order; the output preserves rule order and drops duplicate tags.
type tagRule struct {
	keyword string
	tag     string
}

// tagRules is the fixed suggestion table. Keywords are matched
// case-insensitively as substrings of the transcript content.
var tagRules = []tagRule{
	{"merger", "m_and_a"},
	{"acquisition", "m_and_a"},
	{"acquire", "m_and_a"},
	{"takeover", "m_and_a"},
	{"due diligence", "due_diligence"},
	{"data room", "due_diligence"},
	{"valuation", "valuation"},
	{"dcf", "valuation"},
	{"multiple", "valuation"},
	{"synergy", "synergies"},
	{"synergies", "synergies"},
	{"integration", "integration"},
	{"revenue", "financials"},
	{"ebitda", "financials"},
	{"cash flow", "financials"},
	{"margin", "financials"},
	{"guidance", "financials"},
	{"regulatory", "regulatory"},
	{"antitrust", "regulatory"},
	{"compliance", "regulatory"},
	{"term sheet", "deal_terms"},
	{"loi", "deal_terms"},
	{"earnout", "deal_terms"},
	{"escrow", "deal_terms"},
	{"headcount", "people"},
	{"retention", "people"},
	{"culture", "people"},
	{"restructuring", "restructuring"},
	{"divestiture", "restructuring"},
	{"carve-out", "restructuring"},
	{"ipo", "capital_markets"},
	{"debt financing", "capital_markets"},
	{"leveraged", "capital_markets"},
}

// sourceRule maps a title/content keyword to a source category. The table is
// priority ordered: the first matching rule wins.
type sourceRule struct {
	keyword string
	source  models.Source
}

var titleSourceRules = []sourceRule{
	{"earnings call", models.SourceEarningsCall},
	{"earnings", models.SourceEarningsCall},
	{"q1", models.SourceEarningsCall},
	{"q2", models.SourceEarningsCall},
	{"q3", models.SourceEarningsCall},
	{"q4", models.SourceEarningsCall},
	{"due diligence", models.SourceDueDiligence},
	{"diligence", models.SourceDueDiligence},
	{"board meeting", models.SourceBoardMeeting},
	{"board", models.SourceBoardMeeting},
	{"investor", models.SourceInvestorCall},
	{"roadshow", models.SourceInvestorCall},
	{"analyst", models.SourceAnalystBriefing},
	{"briefing", models.SourceAnalystBriefing},
	{"interview", models.SourceInterview},
	{"standup", models.SourceInternalMeeting},
	{"sync", models.SourceInternalMeeting},
	{"all hands", models.SourceInternalMeeting},
	{"team meeting", models.SourceInternalMeeting},
}

var contentSourceRules = []sourceRule{
	{"operator instructions", models.SourceEarningsCall},
	{"quarter ended", models.SourceEarningsCall},
	{"data room", models.SourceDueDiligence},
	{"diligence checklist", models.SourceDueDiligence},
	{"board resolves", models.SourceBoardMeeting},
	{"minutes of the meeting", models.SourceBoardMeeting},
	{"thank you for taking the time to speak", models.SourceInterview},
}
