package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/multierr"
)

// EnsureIndexes creates the indexes of every collection. Failures are
// collected so one bad collection does not hide the others.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		collection string
		ensure     func(context.Context, *mongo.Collection) error
	}{
		{userCollectionName, EnsureUserIndexes},
		{goalCollectionName, EnsureGoalIndexes},
		{sessionCollectionName, EnsureSessionIndexes},
		{profileCollectionName, EnsureProfileIndexes},
		{coachDocCollectionName, EnsureCoachDocIndexes},
		{vectorCollectionName, EnsureVectorIndexes},
	}

	var errs error
	for _, s := range steps {
		if err := s.ensure(ctx, db.Collection(s.collection)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("indexes for %s: %w", s.collection, err))
		}
	}
	return errs
}
