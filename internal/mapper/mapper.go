package mapper

import (
	"github.com/sitecraft/estimate-api/internal/domain"
)

// ToProjectDTO converts Project to ProjectDTO, including whatever child
// collections were preloaded on the model.
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		ID:                      project.ID,
		OwnerID:                 project.OwnerID,
		Name:                    project.Name,
		ProjectType:             project.ProjectType,
		MeasurementUnit:         project.MeasurementUnit,
		WastagePercentage:       project.WastagePercentage,
		MortarThickness:         project.MortarThickness,
		ProfitType:              project.ProfitType,
		ProfitValue:             project.ProfitValue,
		Transport:               project.Transport,
		TotalFloorArea:          project.TotalFloorArea,
		TotalWallArea:           project.TotalWallArea,
		TotalArea:               project.TotalArea,
		TotalFloorAreaWithWaste: project.TotalFloorAreaWithWaste,
		TotalWallAreaWithWaste:  project.TotalWallAreaWithWaste,
		TotalAreaWithWaste:      project.TotalAreaWithWaste,
		EstimatedDays:           project.EstimatedDays,
		TotalLaborCost:          project.TotalLaborCost,
		CostPerArea:             project.CostPerArea,
		Profit:                  project.Profit,
		CreatedAt:               project.CreatedAt,
		UpdatedAt:               project.UpdatedAt,
	}

	if len(project.Rooms) > 0 {
		dto.Rooms = make([]domain.RoomDTO, len(project.Rooms))
		for i := range project.Rooms {
			dto.Rooms[i] = ToRoomDTO(&project.Rooms[i])
		}
	}
	if len(project.ProjectMaterials) > 0 {
		dto.Materials = make([]domain.ProjectMaterialDTO, len(project.ProjectMaterials))
		for i := range project.ProjectMaterials {
			dto.Materials[i] = ToProjectMaterialDTO(&project.ProjectMaterials[i])
		}
	}
	if len(project.Workers) > 0 {
		dto.Workers = make([]domain.WorkerDTO, len(project.Workers))
		for i := range project.Workers {
			dto.Workers[i] = ToWorkerDTO(&project.Workers[i])
		}
	}

	return dto
}

// ToRoomDTO converts Room to RoomDTO
func ToRoomDTO(room *domain.Room) domain.RoomDTO {
	dto := domain.RoomDTO{
		ID:                 room.ID,
		ProjectID:          room.ProjectID,
		Name:               room.Name,
		RoomType:           room.RoomType,
		Length:             room.Length,
		Breadth:            room.Breadth,
		Height:             room.Height,
		FloorArea:          room.FloorArea,
		WallArea:           room.WallArea,
		TotalArea:          room.TotalArea,
		FloorAreaWithWaste: room.FloorAreaWithWaste,
		WallAreaWithWaste:  room.WallAreaWithWaste,
		TotalAreaWithWaste: room.TotalAreaWithWaste,
	}

	if room.TilingDetails != nil {
		dto.TilingDetails = &domain.TilingRoomDetailsDTO{
			StairLength:      room.TilingDetails.StairLength,
			StairBreadth:     room.TilingDetails.StairBreadth,
			NumberOfSteps:    room.TilingDetails.NumberOfSteps,
			LandingLength:    room.TilingDetails.LandingLength,
			LandingBreadth:   room.TilingDetails.LandingBreadth,
			NumberOfLandings: room.TilingDetails.NumberOfLandings,
			HasMetalStrip:    room.TilingDetails.HasMetalStrip,
		}
	}
	if room.PaintingDetails != nil {
		dto.PaintingDetails = &domain.PaintingRoomDetailsDTO{
			DoorCount:     room.PaintingDetails.DoorCount,
			DoorArea:      room.PaintingDetails.DoorArea,
			WindowCount:   room.PaintingDetails.WindowCount,
			WindowArea:    room.PaintingDetails.WindowArea,
			NumPaintCoats: room.PaintingDetails.NumPaintCoats,
			SurfaceType:   room.PaintingDetails.SurfaceType,
		}
	}

	return dto
}

// ToMaterialDTO converts Material to MaterialDTO
func ToMaterialDTO(material *domain.Material) domain.MaterialDTO {
	return domain.MaterialDTO{
		ID:                  material.ID,
		OwnerID:             material.OwnerID,
		Name:                material.Name,
		Aliases:             material.Aliases,
		Unit:                material.Unit,
		DefaultUnitPrice:    material.DefaultUnitPrice,
		DefaultCoverageArea: material.DefaultCoverageArea,
	}
}

// ToProjectMaterialDTO converts ProjectMaterial to ProjectMaterialDTO
func ToProjectMaterialDTO(pm *domain.ProjectMaterial) domain.ProjectMaterialDTO {
	dto := domain.ProjectMaterialDTO{
		ID:                  pm.ID,
		ProjectID:           pm.ProjectID,
		MaterialID:          pm.MaterialID,
		Unit:                pm.Unit,
		UnitPrice:           pm.EffectiveUnitPrice(),
		Quantity:            pm.Quantity,
		QuantityWithWastage: pm.QuantityWithWastage,
	}
	if pm.Material != nil {
		dto.MaterialName = pm.Material.Name
	}
	return dto
}

// ToWorkerDTO converts Worker to WorkerDTO
func ToWorkerDTO(worker *domain.Worker) domain.WorkerDTO {
	return domain.WorkerDTO{
		ID:                         worker.ID,
		ProjectID:                  worker.ProjectID,
		Role:                       worker.Role,
		Count:                      worker.Count,
		Rate:                       worker.Rate,
		RateType:                   worker.RateType,
		SpecialEquipmentCostPerDay: worker.SpecialEquipmentCostPerDay,
		CoverageArea:               worker.CoverageArea,
		TotalCost:                  worker.TotalCost,
	}
}

// ToUserSettingsDTO converts UserSettings to UserSettingsDTO
func ToUserSettingsDTO(settings *domain.UserSettings) domain.UserSettingsDTO {
	return domain.UserSettingsDTO{
		OwnerID:            settings.OwnerID,
		DefaultFloorRate:   settings.DefaultFloorRate,
		DefaultWallRate:    settings.DefaultWallRate,
		DefaultPainterRate: settings.DefaultPainterRate,
		BufferDays:         settings.BufferDays,
		RoleOverrides:      settings.RoleOverrides,
	}
}
