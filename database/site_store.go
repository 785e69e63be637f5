// database/site_store.go
package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/workflow"
)

type SiteRepo struct {
	c *mongo.Collection
}

func (r *SiteRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Site, error) {
	var s models.Site
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("site", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepo) Insert(ctx context.Context, s *models.Site) error {
	_, err := r.c.InsertOne(ctx, s)
	return err
}

func (r *SiteRepo) List(ctx context.Context) ([]models.Site, error) {
	cur, err := r.c.Find(ctx, bson.M{"active": true},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Site
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
