package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain/microclimate"
	"github.com/orgpulse/orgpulse/pkg/domain/response"
	"github.com/orgpulse/orgpulse/pkg/domain/survey"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"github.com/sirupsen/logrus"
)

type CompanyOverview struct {
	Users             int64 `json:"users"`
	Surveys           int64 `json:"surveys"`
	Responses         int64 `json:"responses"`
	LiveMicroclimates int64 `json:"live_microclimates"`
}

type Service interface {
	CompanyOverview(ctx context.Context, companyID uuid.UUID) (*CompanyOverview, error)
}

type service struct {
	users         user.Repository
	surveys       survey.Repository
	responses     response.Repository
	microclimates microclimate.Repository
	logger        *logrus.Logger
}

func NewService(
	users user.Repository,
	surveys survey.Repository,
	responses response.Repository,
	microclimates microclimate.Repository,
	logger *logrus.Logger,
) Service {
	return &service{
		users:         users,
		surveys:       surveys,
		responses:     responses,
		microclimates: microclimates,
		logger:        logger,
	}
}

func (s *service) CompanyOverview(ctx context.Context, companyID uuid.UUID) (*CompanyOverview, error) {
	_, userCount, err := s.users.List(ctx, user.ListFilter{CompanyID: companyID, Limit: 1})
	if err != nil {
		return nil, err
	}

	surveyCount, err := s.surveys.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responseCount, err := s.responses.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	liveCount, err := s.microclimates.CountLiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return &CompanyOverview{
		Users:             userCount,
		Surveys:           surveyCount,
		Responses:         responseCount,
		LiveMicroclimates: liveCount,
	}, nil
}
