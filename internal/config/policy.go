package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/gangbro/missionboard/internal/apperr"
)

// CrewPolicy holds the crew rules shared by the coordinators.
type CrewPolicy struct {
	MaxCrewPerMission  int64 `env:"MAX_CREW_PER_MISSION,required"`
	MinCrewToStart     int64 `env:"MIN_CREW_TO_START" envDefault:"2"`
	LockEditWhenCrewed bool  `env:"LOCK_EDIT_WHEN_CREWED" envDefault:"false"`
}

// LoadCrewPolicy reads the policy from the process environment.
// Any problem is a CONFIGURATION error and should stop the process.
func LoadCrewPolicy() (*CrewPolicy, error) {
	p := new(CrewPolicy)

	if err := env.Parse(p); err != nil {
		return nil, apperr.Wrap(apperr.CodeConfiguration, "crew policy: "+err.Error(), err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *CrewPolicy) Validate() error {
	if p.MaxCrewPerMission < 1 {
		return apperr.New(apperr.CodeConfiguration, "MAX_CREW_PER_MISSION must be positive")
	}

	if p.MinCrewToStart < 1 {
		return apperr.New(apperr.CodeConfiguration, "MIN_CREW_TO_START must be positive")
	}

	return nil
}
