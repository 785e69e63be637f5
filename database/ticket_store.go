// database/ticket_store.go
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

type TicketRepo struct {
	c *mongo.Collection
}

func (r *TicketRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var t models.Ticket
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("ticket", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) Insert(ctx context.Context, t *models.Ticket) error {
	_, err := r.c.InsertOne(ctx, t)
	return err
}

func ticketSet(mut workflow.TicketMutation) bson.M {
	set := bson.M{"updatedAt": nowUTC()}
	if mut.AssetID != nil {
		set["assetId"] = *mut.AssetID
	}
	if mut.Impact != nil {
		set["impact"] = *mut.Impact
	}
	if mut.Urgency != nil {
		set["urgency"] = *mut.Urgency
	}
	if mut.Priority != nil {
		set["priority"] = *mut.Priority
	}
	if mut.EscalationLevel != nil {
		set["escalationLevel"] = *mut.EscalationLevel
	}
	if mut.AssignedTo != nil {
		set["assignedTo"] = *mut.AssignedTo
	}
	if mut.Resolution != nil {
		set["resolution"] = *mut.Resolution
	}
	if mut.ResolvedBy != nil {
		set["resolvedBy"] = *mut.ResolvedBy
	}
	if mut.ResolvedAt != nil {
		set["resolvedAt"] = *mut.ResolvedAt
	}
	return set
}

func (r *TicketRepo) Update(ctx context.Context, id primitive.ObjectID, mut workflow.TicketMutation) (*models.Ticket, error) {
	var t models.Ticket
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": ticketSet(mut)},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("ticket", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) ClaimStatus(ctx context.Context, id primitive.ObjectID, from []models.TicketStatus, to models.TicketStatus, mut workflow.TicketMutation) (*models.Ticket, error) {
	set := ticketSet(mut)
	set["status"] = to

	var t models.Ticket
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, claimMiss(ctx, r.c, "ticket", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) AppendActivity(ctx context.Context, id primitive.ObjectID, e models.ActivityEntry) error {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"activity": e}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return workflow.NotFound("ticket", id.Hex())
	}
	return nil
}

// TicketFilter narrows ticket listings for the read endpoints.
type TicketFilter struct {
	SiteID     *primitive.ObjectID
	Status     models.TicketStatus
	Priority   string
	AssignedTo *primitive.ObjectID
}

func (r *TicketRepo) List(ctx context.Context, f TicketFilter) ([]models.Ticket, error) {
	filter := bson.M{}
	if f.SiteID != nil {
		filter["siteId"] = *f.SiteID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.AssignedTo != nil {
		filter["assignedTo"] = *f.AssignedTo
	}

	cur, err := r.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Ticket
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
