package reviews

import (
	"time"
	"unicode/utf8"

	"recognition/internal/domain/apperr"
)

const MaxNarrativeLength = 4000

// Review is a manager's structured assessment of one employee.
type Review struct {
	ID            string    `json:"id"`
	ManagerID     string    `json:"managerId"`
	ManagerUserID string    `json:"-"`
	EmployeeID    string    `json:"employeeId"`
	CreatedDate   time.Time `json:"createdDate"`
	Sections
}

// Sections holds the narrative fields, their scores and the overall score.
type Sections struct {
	JobKnowledge       string `json:"jobKnowledge"`
	JobKnowledgeScore  Score  `json:"jobKnowledgeScore"`
	QualityOfWork      string `json:"qualityOfWork"`
	QualityOfWorkScore Score  `json:"qualityOfWorkScore"`
	Communication      string `json:"communication"`
	CommunicationScore Score  `json:"communicationScore"`
	Teamwork           string `json:"teamwork"`
	TeamworkScore      Score  `json:"teamworkScore"`
	Initiative         string `json:"initiative"`
	InitiativeScore    Score  `json:"initiativeScore"`
	TotalReview        Score  `json:"totalReview"`
}

func (s Sections) Validate() error {
	narratives := []struct {
		field string
		text  string
		score Score
	}{
		{"jobKnowledge", s.JobKnowledge, s.JobKnowledgeScore},
		{"qualityOfWork", s.QualityOfWork, s.QualityOfWorkScore},
		{"communication", s.Communication, s.CommunicationScore},
		{"teamwork", s.Teamwork, s.TeamworkScore},
		{"initiative", s.Initiative, s.InitiativeScore},
	}
	for _, n := range narratives {
		if utf8.RuneCountInString(n.text) > MaxNarrativeLength {
			return apperr.Invalid(n.field, "must be at most 4000 characters")
		}
		if !n.score.Valid() {
			return apperr.Invalid(n.field+"Score", "must be one of 0, 8, 15")
		}
	}
	if !s.TotalReview.Valid() {
		return apperr.Invalid("totalReview", "must be one of 0, 8, 15")
	}
	return nil
}
