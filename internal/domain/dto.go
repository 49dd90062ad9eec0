package domain

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Response DTOs
// ============================================================================

// ProjectDTO is the API representation of a project with derived totals
type ProjectDTO struct {
	ID                      uuid.UUID       `json:"id"`
	OwnerID                 uuid.UUID       `json:"ownerId"`
	Name                    string          `json:"name"`
	ProjectType             ProjectType     `json:"projectType"`
	MeasurementUnit         MeasurementUnit `json:"measurementUnit"`
	WastagePercentage       float64         `json:"wastagePercentage"`
	MortarThickness         float64         `json:"mortarThickness"`
	ProfitType              ProfitType      `json:"profitType"`
	ProfitValue             float64         `json:"profitValue"`
	Transport               float64         `json:"transport"`
	TotalFloorArea          float64         `json:"totalFloorArea"`
	TotalWallArea           float64         `json:"totalWallArea"`
	TotalArea               float64         `json:"totalArea"`
	TotalFloorAreaWithWaste float64         `json:"totalFloorAreaWithWaste"`
	TotalWallAreaWithWaste  float64         `json:"totalWallAreaWithWaste"`
	TotalAreaWithWaste      float64         `json:"totalAreaWithWaste"`
	EstimatedDays           int             `json:"estimatedDays"`
	TotalLaborCost          float64         `json:"totalLaborCost"`
	CostPerArea             float64         `json:"costPerArea"`
	Profit                  float64         `json:"profit"`
	Rooms                   []RoomDTO       `json:"rooms,omitempty"`
	Materials               []ProjectMaterialDTO `json:"materials,omitempty"`
	Workers                 []WorkerDTO     `json:"workers,omitempty"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

// RoomDTO is the API representation of a room with derived areas
type RoomDTO struct {
	ID                 uuid.UUID               `json:"id"`
	ProjectID          uuid.UUID               `json:"projectId"`
	Name               string                  `json:"name"`
	RoomType           RoomType                `json:"roomType"`
	Length             float64                 `json:"length"`
	Breadth            float64                 `json:"breadth"`
	Height             float64                 `json:"height"`
	FloorArea          float64                 `json:"floorArea"`
	WallArea           float64                 `json:"wallArea"`
	TotalArea          float64                 `json:"totalArea"`
	FloorAreaWithWaste float64                 `json:"floorAreaWithWaste"`
	WallAreaWithWaste  float64                 `json:"wallAreaWithWaste"`
	TotalAreaWithWaste float64                 `json:"totalAreaWithWaste"`
	TilingDetails      *TilingRoomDetailsDTO   `json:"tilingDetails,omitempty"`
	PaintingDetails    *PaintingRoomDetailsDTO `json:"paintingDetails,omitempty"`
}

// TilingRoomDetailsDTO carries tiling extras for a room
type TilingRoomDetailsDTO struct {
	StairLength      float64 `json:"stairLength"`
	StairBreadth     float64 `json:"stairBreadth"`
	NumberOfSteps    int     `json:"numberOfSteps"`
	LandingLength    float64 `json:"landingLength"`
	LandingBreadth   float64 `json:"landingBreadth"`
	NumberOfLandings int     `json:"numberOfLandings"`
	HasMetalStrip    bool    `json:"hasMetalStrip"`
}

// PaintingRoomDetailsDTO carries painting openings for a room
type PaintingRoomDetailsDTO struct {
	DoorCount     int         `json:"doorCount"`
	DoorArea      float64     `json:"doorArea"`
	WindowCount   int         `json:"windowCount"`
	WindowArea    float64     `json:"windowArea"`
	NumPaintCoats int         `json:"numPaintCoats"`
	SurfaceType   SurfaceType `json:"surfaceType"`
}

// MaterialDTO is the API representation of a catalogue material
type MaterialDTO struct {
	ID                  uuid.UUID  `json:"id"`
	OwnerID             *uuid.UUID `json:"ownerId,omitempty"`
	Name                string     `json:"name"`
	Aliases             []string   `json:"aliases,omitempty"`
	Unit                string     `json:"unit"`
	DefaultUnitPrice    float64    `json:"defaultUnitPrice"`
	DefaultCoverageArea float64    `json:"defaultCoverageArea"`
}

// ProjectMaterialDTO is the API representation of a material selection
type ProjectMaterialDTO struct {
	ID                  uuid.UUID `json:"id"`
	ProjectID           uuid.UUID `json:"projectId"`
	MaterialID          uuid.UUID `json:"materialId"`
	MaterialName        string    `json:"materialName,omitempty"`
	Unit                string    `json:"unit"`
	UnitPrice           float64   `json:"unitPrice"`
	Quantity            float64   `json:"quantity"`
	QuantityWithWastage float64   `json:"quantityWithWastage"`
}

// WorkerDTO is the API representation of a worker group
type WorkerDTO struct {
	ID                         uuid.UUID  `json:"id"`
	ProjectID                  uuid.UUID  `json:"projectId"`
	Role                       WorkerRole `json:"role"`
	Count                      int        `json:"count"`
	Rate                       float64    `json:"rate"`
	RateType                   RateType   `json:"rateType"`
	SpecialEquipmentCostPerDay float64    `json:"specialEquipmentCostPerDay"`
	CoverageArea               float64    `json:"coverageArea"`
	TotalCost                  float64    `json:"totalCost"`
}

// UserSettingsDTO is the API representation of per-owner defaults
type UserSettingsDTO struct {
	OwnerID            uuid.UUID         `json:"ownerId"`
	DefaultFloorRate   float64           `json:"defaultFloorRate"`
	DefaultWallRate    float64           `json:"defaultWallRate"`
	DefaultPainterRate float64           `json:"defaultPainterRate"`
	BufferDays         int               `json:"bufferDays"`
	RoleOverrides      RoleRateOverrides `json:"roleOverrides,omitempty"`
}

// PaginatedResponse wraps paginated list results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// ============================================================================
// Request DTOs
// ============================================================================

// CreateProjectRequest creates a new project
type CreateProjectRequest struct {
	OwnerID           uuid.UUID       `json:"ownerId" validate:"required"`
	Name              string          `json:"name" validate:"required,max=200"`
	ProjectType       ProjectType     `json:"projectType" validate:"required"`
	MeasurementUnit   MeasurementUnit `json:"measurementUnit" validate:"required"`
	WastagePercentage float64         `json:"wastagePercentage" validate:"gte=0"`
	MortarThickness   float64         `json:"mortarThickness" validate:"gte=0"`
	ProfitType        ProfitType      `json:"profitType" validate:"required"`
	ProfitValue       float64         `json:"profitValue" validate:"gte=0"`
	Transport         float64         `json:"transport" validate:"gte=0"`
}

// UpdateProjectRequest updates the user-owned fields of a project
type UpdateProjectRequest struct {
	Name              string          `json:"name" validate:"required,max=200"`
	ProjectType       ProjectType     `json:"projectType" validate:"required"`
	MeasurementUnit   MeasurementUnit `json:"measurementUnit" validate:"required"`
	WastagePercentage float64         `json:"wastagePercentage" validate:"gte=0"`
	MortarThickness   float64         `json:"mortarThickness" validate:"gte=0"`
	ProfitType        ProfitType      `json:"profitType" validate:"required"`
	ProfitValue       float64         `json:"profitValue" validate:"gte=0"`
	Transport         float64         `json:"transport" validate:"gte=0"`
}

// CreateRoomRequest adds a room to a project
type CreateRoomRequest struct {
	Name            string                  `json:"name" validate:"required,max=200"`
	RoomType        RoomType                `json:"roomType"`
	Length          float64                 `json:"length" validate:"gte=0"`
	Breadth         float64                 `json:"breadth" validate:"gte=0"`
	Height          float64                 `json:"height" validate:"gte=0"`
	TilingDetails   *TilingRoomDetailsDTO   `json:"tilingDetails,omitempty"`
	PaintingDetails *PaintingRoomDetailsDTO `json:"paintingDetails,omitempty"`
}

// UpdateRoomRequest updates a room's geometry and details
type UpdateRoomRequest struct {
	Name            string                  `json:"name" validate:"required,max=200"`
	RoomType        RoomType                `json:"roomType"`
	Length          float64                 `json:"length" validate:"gte=0"`
	Breadth         float64                 `json:"breadth" validate:"gte=0"`
	Height          float64                 `json:"height" validate:"gte=0"`
	TilingDetails   *TilingRoomDetailsDTO   `json:"tilingDetails,omitempty"`
	PaintingDetails *PaintingRoomDetailsDTO `json:"paintingDetails,omitempty"`
}

// CreateMaterialRequest adds a catalogue material
type CreateMaterialRequest struct {
	OwnerID             *uuid.UUID `json:"ownerId,omitempty"`
	Name                string     `json:"name" validate:"required,max=200"`
	Aliases             []string   `json:"aliases,omitempty"`
	Unit                string     `json:"unit" validate:"required,max=50"`
	DefaultUnitPrice    float64    `json:"defaultUnitPrice" validate:"gte=0"`
	DefaultCoverageArea float64    `json:"defaultCoverageArea" validate:"gte=0"`
}

// UpdateMaterialRequest updates a catalogue material
type UpdateMaterialRequest struct {
	Name                string   `json:"name" validate:"required,max=200"`
	Aliases             []string `json:"aliases,omitempty"`
	Unit                string   `json:"unit" validate:"required,max=50"`
	DefaultUnitPrice    float64  `json:"defaultUnitPrice" validate:"gte=0"`
	DefaultCoverageArea float64  `json:"defaultCoverageArea" validate:"gte=0"`
}

// SelectMaterialRequest selects a catalogue material for a project
type SelectMaterialRequest struct {
	MaterialID uuid.UUID `json:"materialId" validate:"required"`
	Unit       string    `json:"unit,omitempty" validate:"max=50"`
}

// UpdateProjectMaterialRequest changes a selection's unit or price snapshot
type UpdateProjectMaterialRequest struct {
	Unit      *string  `json:"unit,omitempty" validate:"omitempty,max=50"`
	UnitPrice *float64 `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
}

// CreateWorkerRequest adds a worker group to a project
type CreateWorkerRequest struct {
	Role                       WorkerRole `json:"role" validate:"required"`
	Count                      int        `json:"count" validate:"required,gte=1"`
	Rate                       float64    `json:"rate" validate:"gte=0"`
	RateType                   RateType   `json:"rateType" validate:"required"`
	SpecialEquipmentCostPerDay float64    `json:"specialEquipmentCostPerDay" validate:"gte=0"`
}

// UpdateWorkerRequest updates a worker group
type UpdateWorkerRequest struct {
	Role                       WorkerRole `json:"role" validate:"required"`
	Count                      int        `json:"count" validate:"required,gte=1"`
	Rate                       float64    `json:"rate" validate:"gte=0"`
	RateType                   RateType   `json:"rateType" validate:"required"`
	SpecialEquipmentCostPerDay float64    `json:"specialEquipmentCostPerDay" validate:"gte=0"`
}

// UpdateSettingsRequest updates per-owner estimation defaults
type UpdateSettingsRequest struct {
	DefaultFloorRate   float64           `json:"defaultFloorRate" validate:"gte=0"`
	DefaultWallRate    float64           `json:"defaultWallRate" validate:"gte=0"`
	DefaultPainterRate float64           `json:"defaultPainterRate" validate:"gte=0"`
	BufferDays         int               `json:"bufferDays" validate:"gte=0"`
	RoleOverrides      RoleRateOverrides `json:"roleOverrides,omitempty"`
}

// PreviewProjectRequest is an in-memory project draft for what-if runs.
// Nothing in it is persisted.
type PreviewProjectRequest struct {
	OwnerID           uuid.UUID           `json:"ownerId" validate:"required"`
	ProjectType       ProjectType         `json:"projectType" validate:"required"`
	MeasurementUnit   MeasurementUnit     `json:"measurementUnit" validate:"required"`
	WastagePercentage float64             `json:"wastagePercentage" validate:"gte=0"`
	MortarThickness   float64             `json:"mortarThickness" validate:"gte=0"`
	ProfitType        ProfitType          `json:"profitType" validate:"required"`
	ProfitValue       float64             `json:"profitValue" validate:"gte=0"`
	Transport         float64             `json:"transport" validate:"gte=0"`
	Rooms             []CreateRoomRequest `json:"rooms,omitempty"`
	MaterialNames     []string            `json:"materialNames,omitempty"`
	Workers           []CreateWorkerRequest `json:"workers,omitempty"`
}
