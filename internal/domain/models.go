package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a UUID so the model works on databases without a
// server-side uuid generator (sqlite in tests).
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ProjectType classifies the kind of construction work being estimated
type ProjectType string

const (
	ProjectTypeTiling    ProjectType = "tiling"
	ProjectTypePavement  ProjectType = "pavement"
	ProjectTypeMasonry   ProjectType = "masonry"
	ProjectTypeCarpentry ProjectType = "carpentry"
	ProjectTypePainting  ProjectType = "painting"
	ProjectTypePlumbing  ProjectType = "plumbing"
	ProjectTypeOther     ProjectType = "other"
)

// IsValid checks if the ProjectType is a valid enum value
func (pt ProjectType) IsValid() bool {
	switch pt {
	case ProjectTypeTiling, ProjectTypePavement, ProjectTypeMasonry,
		ProjectTypeCarpentry, ProjectTypePainting, ProjectTypePlumbing, ProjectTypeOther:
		return true
	}
	return false
}

// MeasurementUnit is the length unit of user-supplied dimensions
type MeasurementUnit string

const (
	UnitMeters      MeasurementUnit = "meters"
	UnitFeet        MeasurementUnit = "feet"
	UnitInches      MeasurementUnit = "inches"
	UnitCentimeters MeasurementUnit = "centimeters"
)

// IsValid checks if the MeasurementUnit is a valid enum value
func (mu MeasurementUnit) IsValid() bool {
	switch mu {
	case UnitMeters, UnitFeet, UnitInches, UnitCentimeters:
		return true
	}
	return false
}

// ProfitType determines how the profit policy is applied in the roll-up
type ProfitType string

const (
	ProfitTypeFixed      ProfitType = "fixed"
	ProfitTypePerArea    ProfitType = "per_area"
	ProfitTypePercentage ProfitType = "percentage"
)

// IsValid checks if the ProfitType is a valid enum value
func (pt ProfitType) IsValid() bool {
	switch pt {
	case ProfitTypeFixed, ProfitTypePerArea, ProfitTypePercentage:
		return true
	}
	return false
}

// Project is a single construction estimate: geometry, materials, workers
// and profit policy, plus the engine-owned derived totals.
//
// WastagePercentage is a tier selector on input; the engine overwrites it
// with the effective percent it chose. Derived fields (TotalFloorArea
// onwards) are never authoritative input; every recompute overwrites them
// wholesale.
type Project struct {
	BaseModel
	OwnerID           uuid.UUID       `gorm:"type:uuid;not null;index;column:owner_id"`
	Name              string          `gorm:"type:varchar(200);not null;index"`
	ProjectType       ProjectType     `gorm:"type:varchar(50);not null;default:'other';index;column:project_type"`
	MeasurementUnit   MeasurementUnit `gorm:"type:varchar(50);not null;default:'meters';column:measurement_unit"`
	WastagePercentage float64         `gorm:"type:decimal(8,2);not null;default:0;column:wastage_percentage"`
	MortarThickness   float64         `gorm:"type:decimal(8,2);not null;default:0;column:mortar_thickness"`
	ProfitType        ProfitType      `gorm:"type:varchar(50);not null;default:'fixed';column:profit_type"`
	ProfitValue       float64         `gorm:"type:decimal(15,2);not null;default:0;column:profit_value"`
	Transport         float64         `gorm:"type:decimal(15,2);not null;default:0"`

	TotalFloorArea          float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_floor_area"`
	TotalWallArea           float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_wall_area"`
	TotalArea               float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_area"`
	TotalFloorAreaWithWaste float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_floor_area_with_waste"`
	TotalWallAreaWithWaste  float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_wall_area_with_waste"`
	TotalAreaWithWaste      float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_area_with_waste"`
	EstimatedDays           int     `gorm:"not null;default:0;column:estimated_days"`
	TotalLaborCost          float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_labor_cost"`
	CostPerArea             float64 `gorm:"type:decimal(15,2);not null;default:0;column:cost_per_area"`
	Profit                  float64 `gorm:"type:decimal(15,2);not null;default:0"`

	Rooms            []Room            `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	ProjectMaterials []ProjectMaterial `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Workers          []Worker          `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// RoomType is descriptive only; it does not affect any calculation
type RoomType string

const (
	RoomTypeBedroom  RoomType = "bedroom"
	RoomTypeBathroom RoomType = "bathroom"
	RoomTypeKitchen  RoomType = "kitchen"
	RoomTypeLiving   RoomType = "living"
	RoomTypeHallway  RoomType = "hallway"
	RoomTypeExterior RoomType = "exterior"
	RoomTypeOther    RoomType = "other"
)

// Room is a geometric sub-component of a project. Raw dimensions are in
// the project's measurement unit; derived areas are in square meters.
type Room struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;column:project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID"`
	Name      string    `gorm:"type:varchar(200);not null"`
	RoomType  RoomType  `gorm:"type:varchar(50);not null;default:'other';column:room_type"`
	Length    float64   `gorm:"type:decimal(10,2);not null;default:0"`
	Breadth   float64   `gorm:"type:decimal(10,2);not null;default:0"`
	Height    float64   `gorm:"type:decimal(10,2);not null;default:0"`

	FloorArea          float64 `gorm:"type:decimal(15,2);not null;default:0;column:floor_area"`
	WallArea           float64 `gorm:"type:decimal(15,2);not null;default:0;column:wall_area"`
	TotalArea          float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_area"`
	FloorAreaWithWaste float64 `gorm:"type:decimal(15,2);not null;default:0;column:floor_area_with_waste"`
	WallAreaWithWaste  float64 `gorm:"type:decimal(15,2);not null;default:0;column:wall_area_with_waste"`
	TotalAreaWithWaste float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_area_with_waste"`

	TilingDetails   *TilingRoomDetails   `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	PaintingDetails *PaintingRoomDetails `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// TilingRoomDetails supplements a room with stair and landing geometry.
// Dimensions are in the project's measurement unit.
type TilingRoomDetails struct {
	BaseModel
	RoomID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:room_id"`
	StairLength      float64   `gorm:"type:decimal(10,2);not null;default:0;column:stair_length"`
	StairBreadth     float64   `gorm:"type:decimal(10,2);not null;default:0;column:stair_breadth"`
	NumberOfSteps    int       `gorm:"not null;default:0;column:number_of_steps"`
	LandingLength    float64   `gorm:"type:decimal(10,2);not null;default:0;column:landing_length"`
	LandingBreadth   float64   `gorm:"type:decimal(10,2);not null;default:0;column:landing_breadth"`
	NumberOfLandings int       `gorm:"not null;default:0;column:number_of_landings"`
	HasMetalStrip    bool      `gorm:"not null;default:false;column:has_metal_strip"`
}

// TableName overrides the default table name
func (TilingRoomDetails) TableName() string {
	return "tiling_room_details"
}

// SurfaceType describes the painted surface
type SurfaceType string

const (
	SurfaceSmooth   SurfaceType = "smooth"
	SurfaceTextured SurfaceType = "textured"
	SurfaceExterior SurfaceType = "exterior"
)

// PaintingRoomDetails supplements a room with openings and coat data.
// Door and window areas are per opening, in square meters.
type PaintingRoomDetails struct {
	BaseModel
	RoomID        uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex;column:room_id"`
	DoorCount     int         `gorm:"not null;default:0;column:door_count"`
	DoorArea      float64     `gorm:"type:decimal(10,2);not null;default:0;column:door_area"`
	WindowCount   int         `gorm:"not null;default:0;column:window_count"`
	WindowArea    float64     `gorm:"type:decimal(10,2);not null;default:0;column:window_area"`
	NumPaintCoats int         `gorm:"not null;default:1;column:num_paint_coats"`
	SurfaceType   SurfaceType `gorm:"type:varchar(50);not null;default:'smooth';column:surface_type"`
}

// TableName overrides the default table name
func (PaintingRoomDetails) TableName() string {
	return "painting_room_details"
}

// Material is a catalogue entry. Global materials have a nil OwnerID;
// per-user materials set it. Aliases list alternate catalogue names that
// resolve to the same coverage entry ("tile adhesive" -> "tile cement").
type Material struct {
	BaseModel
	OwnerID             *uuid.UUID     `gorm:"type:uuid;index;column:owner_id"`
	Name                string         `gorm:"type:varchar(200);not null;index"`
	Aliases             pq.StringArray `gorm:"type:text[]"`
	Unit                string         `gorm:"type:varchar(50);not null;default:'unit'"`
	DefaultUnitPrice    float64        `gorm:"type:decimal(15,2);not null;default:0;column:default_unit_price"`
	DefaultCoverageArea float64        `gorm:"type:decimal(10,2);not null;default:0;column:default_coverage_area"`
}

// ProjectMaterial is a material selected for a project. Quantity fields
// are engine-derived; Unit may be overwritten by presentation conversion
// (wheelbarrows -> tippers, grout -> bags). UnitPrice snapshots the
// catalogue price at selection time so later catalogue edits do not
// silently alter past estimates.
type ProjectMaterial struct {
	BaseModel
	ProjectID           uuid.UUID `gorm:"type:uuid;not null;index:idx_project_material,unique;column:project_id"`
	Project             *Project  `gorm:"foreignKey:ProjectID"`
	MaterialID          uuid.UUID `gorm:"type:uuid;not null;index:idx_project_material,unique;column:material_id"`
	Material            *Material `gorm:"foreignKey:MaterialID"`
	Unit                string    `gorm:"type:varchar(50);not null;default:'unit'"`
	UnitPrice           float64   `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	Quantity            float64   `gorm:"type:decimal(15,2);not null;default:0"`
	QuantityWithWastage float64   `gorm:"type:decimal(15,2);not null;default:0;column:quantity_with_wastage"`
}

// TableName overrides the default table name
func (ProjectMaterial) TableName() string {
	return "project_materials"
}

// EffectiveUnitPrice returns the snapshotted price, falling back to the
// catalogue default for rows selected before prices were snapshotted.
func (pm *ProjectMaterial) EffectiveUnitPrice() float64 {
	if pm.UnitPrice > 0 {
		return pm.UnitPrice
	}
	if pm.Material != nil {
		return pm.Material.DefaultUnitPrice
	}
	return 0
}

// WorkerRole is the trade of a worker group
type WorkerRole string

const (
	RoleLabourer   WorkerRole = "labourer"
	RoleMaster     WorkerRole = "master"
	RoleSupervisor WorkerRole = "supervisor"
	RoleTiler      WorkerRole = "tiler"
	RoleMason      WorkerRole = "mason"
	RoleCarpenter  WorkerRole = "carpenter"
	RolePainter    WorkerRole = "painter"
	RolePlasterer  WorkerRole = "plasterer"
	RoleOther      WorkerRole = "other"
)

// IsValid checks if the WorkerRole is a valid enum value
func (wr WorkerRole) IsValid() bool {
	switch wr {
	case RoleLabourer, RoleMaster, RoleSupervisor, RoleTiler, RoleMason,
		RoleCarpenter, RolePainter, RolePlasterer, RoleOther:
		return true
	}
	return false
}

// RateType determines how a worker's rate is charged
type RateType string

const (
	RateTypeDaily  RateType = "daily"
	RateTypeHourly RateType = "hourly"
)

// IsValid checks if the RateType is a valid enum value
func (rt RateType) IsValid() bool {
	switch rt {
	case RateTypeDaily, RateTypeHourly:
		return true
	}
	return false
}

// Worker is a group of labourers of one role assigned to a project.
// CoverageArea and TotalCost are engine-derived.
type Worker struct {
	BaseModel
	ProjectID                  uuid.UUID  `gorm:"type:uuid;not null;index;column:project_id"`
	Project                    *Project   `gorm:"foreignKey:ProjectID"`
	Role                       WorkerRole `gorm:"type:varchar(50);not null;default:'other'"`
	Count                      int        `gorm:"not null;default:1"`
	Rate                       float64    `gorm:"type:decimal(15,2);not null;default:0"`
	RateType                   RateType   `gorm:"type:varchar(50);not null;default:'daily';column:rate_type"`
	SpecialEquipmentCostPerDay float64    `gorm:"type:decimal(15,2);not null;default:0;column:special_equipment_cost_per_day"`
	CoverageArea               float64    `gorm:"type:decimal(10,2);not null;default:0;column:coverage_area"`
	TotalCost                  float64    `gorm:"type:decimal(15,2);not null;default:0;column:total_cost"`
}

// RoleRateOverride carries per-role coverage overrides from user settings.
// Nil fields fall through to the hardcoded role defaults, field by field.
type RoleRateOverride struct {
	FloorRate *float64 `json:"floorRate,omitempty"`
	WallRate  *float64 `json:"wallRate,omitempty"`
}

// RoleRateOverrides is a role -> override map stored as a JSON column.
type RoleRateOverrides map[string]RoleRateOverride

// Value implements driver.Valuer
func (o RoleRateOverrides) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (o *RoleRateOverrides) Scan(value interface{}) error {
	if value == nil {
		*o = RoleRateOverrides{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for RoleRateOverrides: %T", value)
	}
	if len(data) == 0 {
		*o = RoleRateOverrides{}
		return nil
	}
	return json.Unmarshal(data, o)
}

// UserSettings holds per-owner estimation defaults. One row per owner,
// auto-created on first access.
type UserSettings struct {
	BaseModel
	OwnerID            uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex;column:owner_id"`
	DefaultFloorRate   float64           `gorm:"type:decimal(10,2);not null;default:10;column:default_floor_rate"`
	DefaultWallRate    float64           `gorm:"type:decimal(10,2);not null;default:10;column:default_wall_rate"`
	DefaultPainterRate float64           `gorm:"type:decimal(10,2);not null;default:120;column:default_painter_rate"`
	BufferDays         int               `gorm:"not null;default:0;column:buffer_days"`
	RoleOverrides      RoleRateOverrides `gorm:"type:jsonb;column:role_overrides"`
}

// TableName overrides the default table name
func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultUserSettings returns a fresh settings row for an owner with the
// standard rate defaults.
func DefaultUserSettings(ownerID uuid.UUID) UserSettings {
	return UserSettings{
		OwnerID:            ownerID,
		DefaultFloorRate:   10,
		DefaultWallRate:    10,
		DefaultPainterRate: 120,
		BufferDays:         0,
		RoleOverrides:      RoleRateOverrides{},
	}
}
