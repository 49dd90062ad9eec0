package service

import (
	"context"

	"github.com/google/uuid"
)

// QuotaResource identifies a countable resource gated by the owner's plan.
type QuotaResource string

const (
	QuotaProjects          QuotaResource = "projects"
	QuotaRoomsPerProject   QuotaResource = "rooms_per_project"
	QuotaMaterials         QuotaResource = "materials"
	QuotaSelectedMaterials QuotaResource = "materials_per_project"
	QuotaWorkersPerProject QuotaResource = "workers_per_project"
)

// QuotaGate decides whether an owner may create one more of a resource.
// Billing lives in a separate system; implementations call out to it.
// Returning an error wrapping ErrQuotaDenied blocks the create.
type QuotaGate interface {
	AllowCreate(ctx context.Context, ownerID uuid.UUID, resource QuotaResource, current int64) error
}

// AllowAll is the default gate used when no billing backend is configured.
type AllowAll struct{}

func (AllowAll) AllowCreate(ctx context.Context, ownerID uuid.UUID, resource QuotaResource, current int64) error {
	return nil
}
