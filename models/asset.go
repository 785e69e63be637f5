// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetStatus is the canonical lifecycle status of a physical unit.
// The workflow package owns which transitions between these are legal.
type AssetStatus string

const (
	AssetOperational    AssetStatus = "Operational"
	AssetDegraded       AssetStatus = "Degraded"
	AssetOffline        AssetStatus = "Offline"
	AssetMaintenance    AssetStatus = "Maintenance"
	AssetInRepair       AssetStatus = "InRepair"
	AssetNotInstalled   AssetStatus = "NotInstalled"
	AssetSpare          AssetStatus = "Spare"
	AssetInTransit      AssetStatus = "InTransit"
	AssetDamaged        AssetStatus = "Damaged"
	AssetReserved       AssetStatus = "Reserved"
	AssetDecommissioned AssetStatus = "Decommissioned"
	AssetOnline         AssetStatus = "Online"
	AssetPassiveDevice  AssetStatus = "PassiveDevice"
)

type Asset struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AssetCode     string              `bson:"assetCode" json:"assetCode"` // immutable, survives hardware swaps
	Name          string              `bson:"name,omitempty" json:"name,omitempty"`
	AssetType     string              `bson:"assetType" json:"assetType"` // Camera, Switch, Server, ...
	DeviceType    string              `bson:"deviceType,omitempty" json:"deviceType,omitempty"`
	Make          string              `bson:"make,omitempty" json:"make,omitempty"`
	Model         string              `bson:"model,omitempty" json:"model,omitempty"`
	SerialNumber  string              `bson:"serialNumber,omitempty" json:"serialNumber,omitempty"`
	MACAddress    string              `bson:"macAddress,omitempty" json:"macAddress,omitempty"`
	IPAddress     string              `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	SiteID        primitive.ObjectID  `bson:"siteId" json:"siteId"`
	StockLocation string              `bson:"stockLocation,omitempty" json:"stockLocation,omitempty"`
	Status        AssetStatus         `bson:"status" json:"status"`
	Criticality   int                 `bson:"criticality" json:"criticality"` // 1-3, weights ticket priority
	ReservedBy    *primitive.ObjectID `bson:"reservedBy,omitempty" json:"reservedBy,omitempty"`
	Active        bool                `bson:"active" json:"active"`
	CreatedBy     primitive.ObjectID  `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// AssetSnapshot freezes the identifying fields of an asset at a point in
// time. RMA records and the stock movement ledger embed these so history
// survives later hardware swaps.
type AssetSnapshot struct {
	AssetCode    string `bson:"assetCode" json:"assetCode"`
	AssetType    string `bson:"assetType,omitempty" json:"assetType,omitempty"`
	Make         string `bson:"make,omitempty" json:"make,omitempty"`
	Model        string `bson:"model,omitempty" json:"model,omitempty"`
	SerialNumber string `bson:"serialNumber,omitempty" json:"serialNumber,omitempty"`
	MACAddress   string `bson:"macAddress,omitempty" json:"macAddress,omitempty"`
	IPAddress    string `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
}
