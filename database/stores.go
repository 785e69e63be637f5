// database/stores.go
package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/workflow"
)

// Repos bundles the concrete MongoDB repositories. Every Claim/Transition
// method is implemented as a single FindOneAndUpdate whose filter carries the
// expected status, so the status guard and the mutation are one atomic
// document write.
type Repos struct {
	Assets       *AssetRepo
	Tickets      *TicketRepo
	RMAs         *RMARepo
	Requisitions *RequisitionRepo
	Transfers    *TransferRepo
	Ledger       *LedgerRepo
	Counters     *CounterRepo
	Replacements *ReplacementRepo
	Users        *UserRepo
	Sites        *SiteRepo
}

func NewRepos() *Repos {
	db := DB()
	return &Repos{
		Assets:       &AssetRepo{c: db.Collection("assets")},
		Tickets:      &TicketRepo{c: db.Collection("tickets")},
		RMAs:         &RMARepo{c: db.Collection("rma_requests")},
		Requisitions: &RequisitionRepo{c: db.Collection("requisitions")},
		Transfers:    &TransferRepo{c: db.Collection("stock_transfers")},
		Ledger:       &LedgerRepo{c: db.Collection("stock_movements")},
		Counters:     &CounterRepo{c: db.Collection("counters")},
		Replacements: &ReplacementRepo{c: db.Collection("stock_replacements")},
		Users:        &UserRepo{c: db.Collection("users")},
		Sites:        &SiteRepo{c: db.Collection("sites")},
	}
}

// Stores adapts the repositories to the interfaces the workflow engine
// consumes.
func (r *Repos) Stores() workflow.Stores {
	return workflow.Stores{
		Assets:       r.Assets,
		Tickets:      r.Tickets,
		RMAs:         r.RMAs,
		Requisitions: r.Requisitions,
		Transfers:    r.Transfers,
		Ledger:       r.Ledger,
		Counters:     r.Counters,
		Replacements: r.Replacements,
		Users:        r.Users,
	}
}

// claimMiss turns a FindOneAndUpdate miss into the right workflow error: the
// document either does not exist (NotFound) or exists in a status the filter
// excluded (Conflict).
func claimMiss(ctx context.Context, c *mongo.Collection, kind string, id primitive.ObjectID) error {
	err := c.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return workflow.NotFound(kind, id.Hex())
	}
	if err != nil {
		return err
	}
	return workflow.Conflictf("%s %s was modified concurrently", kind, id.Hex())
}

// --- counters ---

type CounterRepo struct {
	c *mongo.Collection
}

// Next increments and returns the named counter in one upserted write, so
// concurrent callers always draw distinct values.
func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// --- ledger ---

type LedgerRepo struct {
	c *mongo.Collection
}

func (r *LedgerRepo) Append(ctx context.Context, entry *models.StockMovementLog) error {
	_, err := r.c.InsertOne(ctx, entry)
	return err
}

func (r *LedgerRepo) ListByAsset(ctx context.Context, assetID primitive.ObjectID) ([]models.StockMovementLog, error) {
	cur, err := r.c.Find(ctx, bson.M{"assetId": assetID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.StockMovementLog
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- replacements ---

type ReplacementRepo struct {
	c *mongo.Collection
}

func (r *ReplacementRepo) Insert(ctx context.Context, rec *models.StockReplacement) error {
	_, err := r.c.InsertOne(ctx, rec)
	return err
}

// --- users ---

type UserRepo struct {
	c *mongo.Collection
}

func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("user", id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindActiveByRoles(ctx context.Context, roles []string) ([]models.User, error) {
	cur, err := r.c.Find(ctx, bson.M{"role": bson.M{"$in": roles}, "active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.c.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.NotFound("user", email)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Insert(ctx context.Context, u *models.User) error {
	_, err := r.c.InsertOne(ctx, u)
	return err
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
