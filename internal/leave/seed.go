package leave

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeedDefaults inserts the standard leave types, skipping names that
// already exist.
func SeedDefaults(ctx context.Context, repo Repository) error {
	defaults := []LeaveType{
		{Name: "Sick Leave", MaxDaysPerYear: 12, RequiresApproval: true, Description: "For medical emergencies and health issues", IsActive: true},
		{Name: "Casual Leave", MaxDaysPerYear: 10, RequiresApproval: true, Description: "For personal work and short breaks", IsActive: true},
		{Name: "Earned Leave", MaxDaysPerYear: 15, RequiresApproval: true, Description: "Accumulated leave for vacation", IsActive: true},
		{Name: "Maternity Leave", MaxDaysPerYear: 180, RequiresApproval: true, Description: "For expecting mothers", IsActive: true},
		{Name: "Paternity Leave", MaxDaysPerYear: 15, RequiresApproval: true, Description: "For new fathers", IsActive: true},
	}

	for i := range defaults {
		defaults[i].ID = uuid.New()
		if err := repo.EnsureTypeExists(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	zap.L().Named("leave.seed").Info("default leave types ensured", zap.Int("count", len(defaults)))
	return nil
}
