package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ResetFlowStep tracks how far through the three-step password reset a flow
// has progressed.
type ResetFlowStep int

const (
	StepQuestionIssued ResetFlowStep = iota
	StepAnswerVerified
)

// ResetFlow is the in-memory state of one password-reset attempt.
// Flows expire with the cache entry; an expired flow forces a restart.
type ResetFlow struct {
	Id         string
	UserId     uuid.UUID
	Step       ResetFlowStep
	ResetToken string
	Attempts   int
	CreatedAt  time.Time
}

type ResetFlowRepository struct {
	cache *cache.Cache
}

func NewResetFlowRepository() *ResetFlowRepository {
	// Flows expire after 10 minutes; purge sweeps every minute.
	c := cache.New(10*time.Minute, 1*time.Minute)
	return &ResetFlowRepository{
		cache: c,
	}
}

func (r *ResetFlowRepository) Save(flow *ResetFlow) {
	r.cache.Set(flow.Id, flow, cache.DefaultExpiration)
}

func (r *ResetFlowRepository) Get(flowId string) (*ResetFlow, bool) {
	if x, found := r.cache.Get(flowId); found {
		return x.(*ResetFlow), true
	}
	return nil, false
}

func (r *ResetFlowRepository) Delete(flowId string) {
	r.cache.Delete(flowId)
}
