// Package deals is the sales-pipeline deal service behind the CRM API.
//
// Business failures travel as outcomes built from the crmerr catalog.
// Store failures travel as Go errors and end up in the exception handler.
package deals

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/blackwell-systems/outcome"
	"github.com/blackwell-systems/outcome/crmerr"
)

// Stage is the position of a deal in the pipeline.
type Stage string

const (
	StageProspect  Stage = "prospect"
	StageQualified Stage = "qualified"
	StageProposal  Stage = "proposal"
	StageWon       Stage = "won"
	StageLost      Stage = "lost"
)

// Stages lists the pipeline stages in order.
var Stages = []Stage{StageProspect, StageQualified, StageProposal, StageWon, StageLost}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	return slices.Contains(Stages, s)
}

// Closed reports whether the deal has left the pipeline.
func (s Stage) Closed() bool {
	return s == StageWon || s == StageLost
}

// Deal is an opportunity tracked through the pipeline. Value is in minor
// currency units.
type Deal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Value     int64     `json:"value"`
	Stage     Stage     `json:"stage"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateDeal is the input for Service.Create.
type CreateDeal struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Stage Stage  `json:"stage"`
}

// Validate checks the input. An empty stage defaults to prospect.
func (in *CreateDeal) Validate() outcome.Result {
	in.Name = strings.TrimSpace(in.Name)
	if in.Stage == "" {
		in.Stage = StageProspect
	}

	switch {
	case in.Name == "":
		return outcome.Failure(crmerr.DealNameRequired)
	case in.Value == 0:
		return outcome.Failure(crmerr.DealValueRequired)
	case in.Value < 0:
		return outcome.Failure(crmerr.DealValueInvalid)
	case !in.Stage.Valid():
		return outcome.Failure(crmerr.DealInvalidStage)
	}
	return outcome.Success()
}

// Store persists deals. Business failures (missing deal, duplicate name)
// are reported as outcomes; the error return is for infrastructure
// failures only.
type Store interface {
	Insert(ctx context.Context, d Deal) (outcome.Result, error)
	Get(ctx context.Context, id string) (outcome.Value[Deal], error)
	List(ctx context.Context, p outcome.PageParams) (items []Deal, total int, err error)
	Update(ctx context.Context, d Deal) (outcome.Result, error)
	Delete(ctx context.Context, id string) (outcome.Result, error)
}
