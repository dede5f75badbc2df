package jobs

import (
	"context"

	"carrental-backend/internal/logger"
)

// MigrateClientTypes moves legacy flat discounts into privileges
func (jr *JobRunner) MigrateClientTypes() {
	_ = jr.runWithRecovery(JobMigrateClientTypes, jr.migrateClientTypes)
}

func (jr *JobRunner) migrateClientTypes(ctx context.Context) error {
	res, err := jr.services.ClientType.MigrateLegacyDiscounts(ctx)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Client type migration finished", "migrated", res.Migrated, "cleaned", res.Cleaned)
	return nil
}

func (jr *JobRunner) seedClientTypes(ctx context.Context) error {
	created, err := jr.services.ClientType.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Default client types seeded", "created", created)
	return nil
}
