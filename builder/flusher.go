package builder

import (
	"context"
	"fmt"

	"tourbase/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlusher writes a component's props straight into its position in the
// tour document, addressed by the selection path plus an array filter on the
// component id.
type MongoFlusher struct{}

// flushFilter matches only when the tour is live AND the addressed section
// still holds the component. A component deleted mid-edit therefore fails
// the flush instead of silently matching just the tour document.
func flushFilter(tourID, fase string, sectionIndex int, componentID string) bson.M {
	componentPath := fmt.Sprintf("fases.%s.%d.components.componentid", fase, sectionIndex)
	return bson.M{
		"tourid":      tourID,
		"deleted":     bson.M{"$ne": true},
		componentPath: componentID,
	}
}

func flushUpdate(fase string, sectionIndex int, props map[string]any) bson.M {
	path := fmt.Sprintf("fases.%s.%d.components.$[c].props", fase, sectionIndex)
	return bson.M{"$set": bson.M{path: props}}
}

func (MongoFlusher) FlushComponent(ctx context.Context, tourID, fase string, sectionIndex int, componentID string, props map[string]any) error {
	res, err := db.ToursCollection.UpdateOne(ctx,
		flushFilter(tourID, fase, sectionIndex, componentID),
		flushUpdate(fase, sectionIndex, props),
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"c.componentid": componentID}},
		}),
	)
	if err != nil {
		return fmt.Errorf("flush component %s: %w", componentID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("flush component %s: not found in tour %s", componentID, tourID)
	}
	return nil
}
