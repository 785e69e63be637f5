// database/asset_store.go
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

type AssetRepo struct {
	c *mongo.Collection
}

func (r *AssetRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	var a models.Asset
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("asset", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepo) Insert(ctx context.Context, a *models.Asset) error {
	_, err := r.c.InsertOne(ctx, a)
	return err
}

func (r *AssetRepo) CountByStatus(ctx context.Context, siteID primitive.ObjectID, assetType string, status models.AssetStatus) (int64, error) {
	return r.c.CountDocuments(ctx, bson.M{
		"siteId":    siteID,
		"assetType": assetType,
		"status":    status,
	})
}

func (r *AssetRepo) SerialExists(ctx context.Context, serial string) (bool, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{"serialNumber": serial})
	return n > 0, err
}

// ClaimStatus applies the mutation only while the asset's status is in the
// expected set, as a single FindOneAndUpdate. The pre-image is returned so
// the caller can write an accurate from/to ledger entry.
func (r *AssetRepo) ClaimStatus(ctx context.Context, id primitive.ObjectID, from []models.AssetStatus, mut workflow.AssetMutation) (*models.Asset, error) {
	filter := bson.M{"_id": id}
	if len(from) > 0 {
		filter["status"] = bson.M{"$in": from}
	}

	set := bson.M{"updatedAt": nowUTC()}
	unset := bson.M{}
	if mut.Status != "" {
		set["status"] = mut.Status
	}
	if mut.SiteID != nil {
		set["siteId"] = *mut.SiteID
	}
	if mut.ClearStockLocation {
		unset["stockLocation"] = ""
	}
	if mut.Identity != nil {
		set["serialNumber"] = mut.Identity.SerialNumber
		set["macAddress"] = mut.Identity.MACAddress
		set["ipAddress"] = mut.Identity.IPAddress
		set["model"] = mut.Identity.Model
		if mut.Identity.Make != "" {
			set["make"] = mut.Identity.Make
		}
	}
	if mut.ReservedBy != nil {
		set["reservedBy"] = *mut.ReservedBy
	}
	if mut.ClearReservedBy {
		unset["reservedBy"] = ""
	}
	if mut.Active != nil {
		set["active"] = *mut.Active
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var before models.Asset
	err := r.c.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.Before)).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, claimMiss(ctx, r.c, "asset", id)
	}
	if err != nil {
		return nil, err
	}
	return &before, nil
}

// AssetFilter narrows asset listings for the read endpoints.
type AssetFilter struct {
	SiteID    *primitive.ObjectID
	AssetType string
	Status    models.AssetStatus
	Active    *bool
}

func (r *AssetRepo) List(ctx context.Context, f AssetFilter) ([]models.Asset, error) {
	filter := bson.M{}
	if f.SiteID != nil {
		filter["siteId"] = *f.SiteID
	}
	if f.AssetType != "" {
		filter["assetType"] = f.AssetType
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Active != nil {
		filter["active"] = *f.Active
	}

	cur, err := r.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "assetCode", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Asset
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
