package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrProjectNotFound is returned when a project is not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrRoomNotFound is returned when a room is not found
	ErrRoomNotFound = errors.New("room not found")

	// ErrMaterialNotFound is returned when a catalogue material is not found
	ErrMaterialNotFound = errors.New("material not found")

	// ErrMaterialNotSelected is returned when a material is not selected on a project
	ErrMaterialNotSelected = errors.New("material not selected for project")

	// ErrMaterialAlreadySelected is returned when selecting a material twice on one project
	ErrMaterialAlreadySelected = errors.New("material already selected for project")

	// ErrMaterialInUse is returned when deleting a catalogue material still selected somewhere
	ErrMaterialInUse = errors.New("material is selected by one or more projects")

	// ErrWorkerNotFound is returned when a worker group is not found
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrNotOwner is returned when a resource belongs to a different owner
	ErrNotOwner = errors.New("resource belongs to another owner")

	// ErrQuotaDenied is returned when the subscription gate rejects a create
	ErrQuotaDenied = errors.New("quota exceeded for current plan")
)
