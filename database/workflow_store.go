// database/workflow_store.go
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

// --- RMAs ---

type RMARepo struct {
	c *mongo.Collection
}

func (r *RMARepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RMARequest, error) {
	var rma models.RMARequest
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rma)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("RMA", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &rma, nil
}

func (r *RMARepo) Insert(ctx context.Context, rma *models.RMARequest) error {
	_, err := r.c.InsertOne(ctx, rma)
	return err
}

func (r *RMARepo) FindActiveByTicket(ctx context.Context, ticketID primitive.ObjectID) (*models.RMARequest, error) {
	var rma models.RMARequest
	err := r.c.FindOne(ctx, bson.M{
		"ticketId": ticketID,
		"status":   bson.M{"$nin": []models.RMAStatus{models.RMAInstalled, models.RMARejected}},
	}).Decode(&rma)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rma, nil
}

// Transition moves the RMA forward and appends the timeline entry in one
// conditional write keyed on the expected current status.
func (r *RMARepo) Transition(ctx context.Context, id primitive.ObjectID, from models.RMAStatus, mut workflow.RMAMutation, entry models.RMATimelineEntry) (*models.RMARequest, error) {
	set := bson.M{"status": mut.Status, "updatedAt": nowUTC()}
	if mut.ApprovedBy != nil {
		set["approvedBy"] = *mut.ApprovedBy
		set["approvedAt"] = *mut.ApprovedAt
	}
	if mut.Replacement != nil {
		set["replacement"] = *mut.Replacement
	}
	if mut.InstalledBy != nil {
		set["installedBy"] = *mut.InstalledBy
		set["installedAt"] = *mut.InstalledAt
	}
	if mut.RejectedBy != nil {
		set["rejectedBy"] = *mut.RejectedBy
		set["rejectedAt"] = *mut.RejectedAt
	}

	var rma models.RMARequest
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set, "$push": bson.M{"timeline": entry}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&rma)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, claimMiss(ctx, r.c, "RMA", id)
	}
	if err != nil {
		return nil, err
	}
	return &rma, nil
}

func (r *RMARepo) ListByTicket(ctx context.Context, ticketID primitive.ObjectID) ([]models.RMARequest, error) {
	cur, err := r.c.Find(ctx, bson.M{"ticketId": ticketID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RMARequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- requisitions ---

type RequisitionRepo struct {
	c *mongo.Collection
}

func (r *RequisitionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Requisition, error) {
	var req models.Requisition
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("requisition", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequisitionRepo) Insert(ctx context.Context, req *models.Requisition) error {
	_, err := r.c.InsertOne(ctx, req)
	return err
}

func (r *RequisitionRepo) Transition(ctx context.Context, id primitive.ObjectID, from []models.RequisitionStatus, mut workflow.RequisitionMutation) (*models.Requisition, error) {
	set := bson.M{"status": mut.Status, "updatedAt": nowUTC()}
	if mut.ApprovedBy != nil {
		set["approvedBy"] = *mut.ApprovedBy
		set["approvedAt"] = *mut.ApprovedAt
	}
	if mut.RejectedBy != nil {
		set["rejectedBy"] = *mut.RejectedBy
		set["rejectedAt"] = *mut.RejectedAt
	}
	if mut.RejectionReason != nil {
		set["rejectionReason"] = *mut.RejectionReason
	}
	if mut.FulfilledAssetID != nil {
		set["fulfilledAssetId"] = *mut.FulfilledAssetID
		set["fulfilledBy"] = *mut.FulfilledBy
		set["fulfilledAt"] = *mut.FulfilledAt
	}

	var req models.Requisition
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, claimMiss(ctx, r.c, "requisition", id)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// --- transfers ---

type TransferRepo struct {
	c *mongo.Collection
}

func (r *TransferRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StockTransfer, error) {
	var t models.StockTransfer
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("transfer", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransferRepo) Insert(ctx context.Context, t *models.StockTransfer) error {
	_, err := r.c.InsertOne(ctx, t)
	return err
}

func (r *TransferRepo) Transition(ctx context.Context, id primitive.ObjectID, from []models.TransferStatus, mut workflow.TransferMutation) (*models.StockTransfer, error) {
	set := bson.M{"status": mut.Status, "updatedAt": nowUTC()}
	if mut.Shipping != nil {
		set["shipping"] = *mut.Shipping
	}
	if mut.ApprovedBy != nil {
		set["approvedBy"] = *mut.ApprovedBy
		set["approvedAt"] = *mut.ApprovedAt
	}
	if mut.DispatchedBy != nil {
		set["dispatchedBy"] = *mut.DispatchedBy
		set["dispatchedAt"] = *mut.DispatchedAt
	}
	if mut.ReceivedBy != nil {
		set["receivedBy"] = *mut.ReceivedBy
		set["receivedAt"] = *mut.ReceivedAt
	}
	if mut.CancelledBy != nil {
		set["cancelledBy"] = *mut.CancelledBy
		set["cancelledAt"] = *mut.CancelledAt
	}

	var t models.StockTransfer
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, claimMiss(ctx, r.c, "transfer", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
