// workflow/asset_registry.go
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sudhansusekhar98/UCC-Ticketing-Tool-sub005/models"
)

// transitionAllowed enforces the constrained edges of the asset status
// machine. Reservation, dispatch and consumption all require the asset to be
// Spare; only a deployed unit can be marked Damaged; Decommissioned is
// terminal. Everything else is an administrative move.
func transitionAllowed(from, to models.AssetStatus) bool {
	switch to {
	case models.AssetReserved, models.AssetInTransit, models.AssetDecommissioned:
		return from == models.AssetSpare
	case models.AssetDamaged:
		return from == models.AssetOperational || from == models.AssetDegraded || from == models.AssetOffline
	default:
		return from != models.AssetDecommissioned
	}
}

// SetAssetStatus is the single entry point for status changes that are not
// part of a larger workflow. The write is conditional on the status observed
// here, so a concurrent change surfaces as ConflictError instead of being
// overwritten, and the paired ledger entry always describes the real edge.
func (e *Engine) SetAssetStatus(ctx context.Context, actor Actor, assetID primitive.ObjectID, to models.AssetStatus, reason string) (*models.Asset, error) {
	a, err := e.stores.Assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.Status == to {
		return nil, Conflictf("asset %s is already %s", a.AssetCode, to)
	}
	if !transitionAllowed(a.Status, to) {
		return nil, Conflictf("asset %s cannot move from %s to %s", a.AssetCode, a.Status, to)
	}

	return e.claimAsset(ctx, actor, assetID, []models.AssetStatus{a.Status},
		AssetMutation{Status: to}, movementFor(a.Status, to), LedgerRefs{}, reason)
}

// movementFor picks the ledger movement type for a bare status change.
func movementFor(from, to models.AssetStatus) models.MovementType {
	switch {
	case to == models.AssetReserved:
		return models.MovementReserved
	case from == models.AssetReserved && to == models.AssetSpare:
		return models.MovementReleased
	case to == models.AssetDecommissioned:
		return models.MovementDisposed
	case from == models.AssetInRepair && to == models.AssetSpare:
		return models.MovementRepairedReturn
	default:
		return models.MovementStatusChange
	}
}

// claimAsset performs the conditional status write plus the paired ledger
// append. It returns the asset as it stands after the mutation.
func (e *Engine) claimAsset(ctx context.Context, actor Actor, assetID primitive.ObjectID, from []models.AssetStatus, mut AssetMutation, mv models.MovementType, refs LedgerRefs, remarks string) (*models.Asset, error) {
	prev, err := e.stores.Assets.ClaimStatus(ctx, assetID, from, mut)
	if err != nil {
		return nil, err
	}

	updated := *prev
	applyAssetMutation(&updated, mut, e.now().UTC())

	e.appendMovement(ctx, actor, prev, &updated, mv, refs, remarks)
	return &updated, nil
}

// applyAssetMutation mirrors the persisted write on an in-memory copy.
func applyAssetMutation(a *models.Asset, mut AssetMutation, now time.Time) {
	if mut.Status != "" {
		a.Status = mut.Status
	}
	if mut.SiteID != nil {
		a.SiteID = *mut.SiteID
	}
	if mut.ClearStockLocation {
		a.StockLocation = ""
	}
	if mut.Identity != nil {
		a.SerialNumber = mut.Identity.SerialNumber
		a.MACAddress = mut.Identity.MACAddress
		a.IPAddress = mut.Identity.IPAddress
		if mut.Identity.Make != "" {
			a.Make = mut.Identity.Make
		}
		a.Model = mut.Identity.Model
	}
	if mut.ReservedBy != nil {
		a.ReservedBy = mut.ReservedBy
	}
	if mut.ClearReservedBy {
		a.ReservedBy = nil
	}
	if mut.Active != nil {
		a.Active = *mut.Active
	}
	a.UpdatedAt = now
}

// AssetIntake is one unit entering stock, by manual add or bulk import.
type AssetIntake struct {
	Name          string             `json:"name,omitempty"`
	AssetType     string             `json:"assetType"`
	DeviceType    string             `json:"deviceType,omitempty"`
	Make          string             `json:"make,omitempty"`
	Model         string             `json:"model,omitempty"`
	SerialNumber  string             `json:"serialNumber,omitempty"`
	MACAddress    string             `json:"macAddress,omitempty"`
	IPAddress     string             `json:"ipAddress,omitempty"`
	SiteID        primitive.ObjectID `json:"siteId"`
	StockLocation string             `json:"stockLocation,omitempty"`
	Criticality   int                `json:"criticality,omitempty"`
}

// AddAsset takes one unit into stock. The asset code is generated, never
// user-supplied, and stays with the record for the life of the hardware slot.
func (e *Engine) AddAsset(ctx context.Context, actor Actor, in AssetIntake) (*models.Asset, error) {
	if strings.TrimSpace(in.AssetType) == "" {
		return nil, Validationf("asset type is required")
	}
	if in.SiteID.IsZero() {
		return nil, Validationf("site is required")
	}
	if in.SerialNumber != "" {
		exists, err := e.stores.Assets.SerialExists(ctx, in.SerialNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, Validationf("serial number %s already exists", in.SerialNumber)
		}
	}

	crit := in.Criticality
	if crit < 1 {
		crit = 1
	}
	if crit > 3 {
		crit = 3
	}

	seq, err := e.stores.Counters.Next(ctx, "assets")
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	a := &models.Asset{
		ID:            primitive.NewObjectID(),
		AssetCode:     fmt.Sprintf("AST-%06d", seq),
		Name:          in.Name,
		AssetType:     in.AssetType,
		DeviceType:    in.DeviceType,
		Make:          in.Make,
		Model:         in.Model,
		SerialNumber:  in.SerialNumber,
		MACAddress:    in.MACAddress,
		IPAddress:     in.IPAddress,
		SiteID:        in.SiteID,
		StockLocation: in.StockLocation,
		Status:        models.AssetSpare,
		Criticality:   crit,
		Active:        true,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := e.stores.Assets.Insert(ctx, a); err != nil {
		return nil, err
	}

	e.appendMovement(ctx, actor, a, a, models.MovementAdded, LedgerRefs{}, "added to stock")
	return a, nil
}

// ImportRowError reports why one row of a bulk import was skipped.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a bulk intake batch.
type ImportResult struct {
	Created []string         `json:"created"` // asset codes
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// BulkImportAssets runs the same intake path as AddAsset for each row.
// Duplicate serials are rejected both within the batch and against existing
// records; failed rows never abort the rest of the batch.
func (e *Engine) BulkImportAssets(ctx context.Context, actor Actor, rows []AssetIntake) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, Validationf("import batch is empty")
	}

	result := &ImportResult{}
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		if row.SerialNumber != "" {
			if seen[row.SerialNumber] {
				result.Errors = append(result.Errors, ImportRowError{Row: i + 1, Message: fmt.Sprintf("duplicate serial %s in batch", row.SerialNumber)})
				continue
			}
			seen[row.SerialNumber] = true
		}
		a, err := e.AddAsset(ctx, actor, row)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: i + 1, Message: err.Error()})
			continue
		}
		result.Created = append(result.Created, a.AssetCode)
	}
	return result, nil
}

// AvailableStock counts spare units of an asset type at a site. Callers use
// it as an optimistic check only; the authoritative guard is the conditional
// claim at fulfillment.
func (e *Engine) AvailableStock(ctx context.Context, siteID primitive.ObjectID, assetType string) (int64, error) {
	return e.stores.Assets.CountByStatus(ctx, siteID, assetType, models.AssetSpare)
}

// GetAsset looks up one asset.
func (e *Engine) GetAsset(ctx context.Context, assetID primitive.ObjectID) (*models.Asset, error) {
	return e.stores.Assets.FindByID(ctx, assetID)
}
