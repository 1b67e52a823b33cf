package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingProfile holds the onboarding answers the assistant uses as context.
type TrainingProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID           string             `bson:"userId" json:"-"`
	Level            string             `bson:"level,omitempty" json:"level,omitempty"`
	PrimaryRole      string             `bson:"primaryRole,omitempty" json:"primaryRole,omitempty"`
	Handedness       string             `bson:"handedness,omitempty" json:"handedness,omitempty"`
	PitchingSchedule string             `bson:"pitchingSchedule,omitempty" json:"pitchingSchedule,omitempty"`
	Priorities       []string           `bson:"priorities,omitempty" json:"priorities,omitempty"`
	GymLevel         string             `bson:"gymLevel,omitempty" json:"gymLevel,omitempty"`
	WorkoutType      string             `bson:"workoutType,omitempty" json:"workoutType,omitempty"`
	TrainingDays     int                `bson:"trainingDays,omitempty" json:"trainingDays,omitempty"`
	HasInjury        *bool              `bson:"hasInjury,omitempty" json:"hasInjury,omitempty"`
	InjuryArea       string             `bson:"injuryArea,omitempty" json:"injuryArea,omitempty"`
	InjuryRecovery   string             `bson:"injuryRecovery,omitempty" json:"injuryRecovery,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"-"`
}
