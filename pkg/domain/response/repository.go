package response

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, response *Response) error
	ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]Response, error)
	CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}
