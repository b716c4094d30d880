package response

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"gorm.io/gorm"
)

// Response is a single submitted answer set for a survey. Demographic
// fields are denormalized at submission time so result filtering does not
// depend on the respondent record staying unchanged.
type Response struct {
	ID           uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	SurveyID     uuid.UUID           `json:"survey_id" gorm:"type:uuid;index"`
	CompanyID    uuid.UUID           `json:"company_id" gorm:"type:uuid;index"`
	RespondentID *uuid.UUID          `json:"respondent_id,omitempty" gorm:"type:uuid"`
	Answers      domain.JSONDocument `json:"answers" gorm:"type:jsonb"`
	Department   string              `json:"department"`
	Tenure       string              `json:"tenure"`
	SubmittedAt  time.Time           `json:"submitted_at"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}

	return r.Validate()
}

func (r *Response) Validate() error {
	if r.SurveyID == uuid.Nil {
		return fmt.Errorf("survey_id is required")
	}

	if r.CompanyID == uuid.Nil {
		return fmt.Errorf("company_id is required")
	}

	if len(r.Answers) == 0 {
		return fmt.Errorf("answers are required")
	}

	return nil
}

func (r *Response) TableName() string {
	return "public.survey_responses"
}
